// seed_catalog genera un script SQL para poblar los catálogos base
// (proveedores, categorías y departamentos) a partir del CSV exportado
// por el sistema administrativo del hotel.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
//
// El CSV viene en ISO-8859-1 (exportado desde Excel en español) con
// separador ';' y columnas: tipo;nombre;contacto;email;telefono
// donde tipo es "proveedor", "categoria" o "departamento". Las columnas
// contacto/email/telefono solo aplican a proveedores.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type proveedor struct {
	nombre   string
	contacto string
	email    string
	telefono string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1 // filas de categoría/departamento traen menos columnas

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var proveedores []proveedor
	categoriaSet := make(map[string]bool)
	deptoSet := make(map[string]bool)

	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue // encabezado
		}
		if len(rec) < 2 {
			continue
		}
		tipo := strings.ToLower(strings.TrimSpace(rec[0]))
		nombre := strings.TrimSpace(rec[1])
		if nombre == "" {
			continue
		}
		switch tipo {
		case "proveedor":
			p := proveedor{nombre: nombre}
			if len(rec) > 2 {
				p.contacto = strings.TrimSpace(rec[2])
			}
			if len(rec) > 3 {
				p.email = strings.TrimSpace(rec[3])
			}
			if len(rec) > 4 {
				p.telefono = strings.TrimSpace(rec[4])
			}
			proveedores = append(proveedores, p)
		case "categoria", "categoría":
			categoriaSet[nombre] = true
		case "departamento":
			deptoSet[nombre] = true
		default:
			fmt.Fprintf(os.Stderr, "Fila %d: tipo desconocido %q, se omite\n", i+1, tipo)
		}
	}

	// Orden estable para que el script generado sea reproducible
	categorias := sortedKeys(categoriaSet)
	departamentos := sortedKeys(deptoSet)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogos base: proveedores, categorías y departamentos\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " por cmd/seed_catalog\n\n")

	out.WriteString("-- 1. Departamentos\n")
	for _, d := range departamentos {
		fmt.Fprintf(out, "INSERT INTO departments (id, name) VALUES (gen_random_uuid(), '%s')\n", escapeSQL(d))
		out.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	}
	out.WriteString("\n-- 2. Categorías\n")
	for _, c := range categorias {
		fmt.Fprintf(out, "INSERT INTO categories (id, label) VALUES (gen_random_uuid(), '%s')\n", escapeSQL(c))
		out.WriteString("ON CONFLICT (label) DO NOTHING;\n")
	}
	out.WriteString("\n-- 3. Proveedores\n")
	for _, p := range proveedores {
		fmt.Fprintf(out, "INSERT INTO suppliers (id, name, contact_name, email, phone, is_active)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', TRUE)\n",
			escapeSQL(p.nombre), escapeSQL(p.contacto), escapeSQL(p.email), escapeSQL(p.telefono))
		out.WriteString("ON CONFLICT DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d proveedores, %d categorías, %d departamentos\n",
		outPath, len(proveedores), len(categorias), len(departamentos))
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
