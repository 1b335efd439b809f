package handlers

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"langsync/internal/server"
)

// NoDirFileSys restricts directory listing
type NoDirFileSys struct {
	fs http.FileSystem
}

// NewNoDirFileSys creates a new NoDirFileSys
func NewNoDirFileSys(fs http.FileSystem) NoDirFileSys {
	return NoDirFileSys{fs: fs}
}

func (nfs NoDirFileSys) Open(name string) (http.File, error) {
	f, err := nfs.fs.Open(name)
	if err != nil {
		return nil, err
	}

	return NoDirFile{f}, nil
}

// NoDirFile restricts directory listing
type NoDirFile struct {
	http.File
}

func (f NoDirFile) Readdir(count int) ([]fs.FileInfo, error) {
	// Disable directory listing
	return nil, nil
}

// StaticRoute serves the embedded public files under /static, notably the
// browser pusher script.
func StaticRoute(a *server.App) echo.HandlerFunc {
	public, err := fs.Sub(a.PublicFS, "public")
	if err != nil {
		// The embedded FS always contains "public".
		panic(err)
	}

	fileServer := http.StripPrefix("/static/",
		http.FileServer(NewNoDirFileSys(http.FS(public))))

	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
