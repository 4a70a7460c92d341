package res

import (
	"net/http"
	"os"
	"path/filepath"
)

// Предопределенные обработчики для стандартных ответов.
var (
	// NotFound возвращает в ответ ошибку с кодом 404.
	NotFound Handler = func(c *Context) error { return ErrNotFound }
	// NotImplemented возвращает в ответ ошибку с кодом 501.
	NotImplemented Handler = func(c *Context) error { return ErrNotImplemented }
)

// HTTPError возвращает обработчик, который всегда отвечает указанной ошибкой.
func HTTPError(code int, message string) Handler {
	return func(c *Context) error {
		return NewError(code, message)
	}
}

// Redirect возвращает обработчик, переадресующий на указанный URL.
func Redirect(url string) Handler {
	return func(c *Context) error {
		http.Redirect(c, c.Request, url, http.StatusFound)
		return nil
	}
}

// Data возвращает обработчик запроса со статическим ответом.
func Data(data interface{}, contentType string) Handler {
	return func(c *Context) error {
		if contentType != "" {
			c.ContentType = contentType
		}
		return c.Send(data)
	}
}

// File возвращает обработчик, отдающий содержимое файла с указанным именем.
// Если файл не найден, то отдается ошибка с кодом 404.
func File(filename string) Handler {
	fi, err := os.Stat(filename) // проверяем, что файл существует и доступен
	if err == nil && fi.IsDir() {
		err = os.ErrNotExist // не позволяем обращаться к каталогам
	}
	return func(c *Context) error {
		if err != nil {
			return err
		}
		http.ServeFile(c, c.Request, filename)
		return nil
	}
}

// Files возвращает обработчик, отдающий файлы из указанного каталога. Имя
// файла берется из именованного параметра пути "filename":
//	mux.Handle("GET", "/static/*filename", res.Files("./static"))
func Files(dir string) Handler {
	return FileParam("filename", dir)
}

// FileParam возвращает обработчик, отдающий из каталога dir файл, имя
// которого задано именованным параметром пути param.
func FileParam(param, dir string) Handler {
	return func(c *Context) error {
		filename := filepath.Join(dir, filepath.FromSlash("/"+c.Param(param)))
		// проверяем, что файл существует и доступен
		fi, err := os.Stat(filename)
		if err != nil {
			return err
		}
		if fi.IsDir() { // не позволяем обращаться к каталогам
			return os.ErrNotExist
		}
		http.ServeFile(c, c.Request, filename)
		return nil
	}
}
