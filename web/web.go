package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html assets/*
var files embed.FS

// Templates разбирает все HTML-шаблоны; имя шаблона = имя файла
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}

// Assets - статические файлы оформления (CSS)
func Assets() fs.FS {
	sub, err := fs.Sub(files, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
