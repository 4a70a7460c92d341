package res_test

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mdigger/res"
)

// Hello описывает ресурс: по одному методу на каждый поддерживаемый
// HTTP-метод.
type Hello struct{}

func (Hello) Get(c *res.Context) error {
	return c.Send(res.JSON{"hello": c.Param("name")})
}

func Example() {
	mux := &res.ServeMux{
		Headers: map[string]string{"X-API-Version": "1.0"},
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
	mux.Resource("/:name", Hello{})
	http.ListenAndServe(":1447", mux)
}

func ExampleServeMux_Handles() {
	mux := new(res.ServeMux)
	mux.Handles(res.Paths{
		"/user/:id": {
			"GET": func(c *res.Context) error {
				return c.Send(res.JSON{"user": c.Param("id")})
			},
			"POST": func(c *res.Context) error {
				var data = make(res.JSON)
				if err := c.Parse(&data); err != nil {
					return err
				}
				return c.Send(data)
			},
		},
		"/message/:text": {
			"GET": func(c *res.Context) error {
				return c.Send(res.JSON{"message": c.Param("text")})
			},
		},
	})
	http.ListenAndServe(":1447", mux)
}

func ExampleContentCoder() {
	// подмена кодировщика меняет формат всех ответов
	res.Encoder = new(res.ContentCoder)

	mux := new(res.ServeMux)
	mux.Handle("GET", "/pdf", func(c *res.Context) error {
		// вместо документа будет отдана страница с его просмотрщиком
		c.ContentType = "application/pdf"
		return c.Send("/files/document.pdf")
	})
	http.ListenAndServe(":1447", mux)
}
