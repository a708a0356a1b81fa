// Package web embeds the browser shell, the page fragments and the seed data
// served when no external resource root is configured.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html pages/*.html data/*.json
var files embed.FS

// Shell returns the index document that hosts the hash router.
func Shell() ([]byte, error) { return files.ReadFile("index.html") }

// Pages is the fragment tree, one <route>.html per route.
func Pages() fs.FS { return sub("pages") }

// Data is the seed tree holding ngos.json and companies.json.
func Data() fs.FS { return sub("data") }

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
