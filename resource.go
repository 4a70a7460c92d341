package res

import "fmt"

// Ресурс описывается объектом, который определяет по одному методу на каждый
// поддерживаемый им HTTP-метод. Какие именно методы поддерживаются,
// определяется тем, какие из этих интерфейсов реализованы.
type (
	// Getter обрабатывает запросы GET (и HEAD, если Header не реализован).
	Getter interface {
		Get(*Context) error
	}
	// Poster обрабатывает запросы POST.
	Poster interface {
		Post(*Context) error
	}
	// Putter обрабатывает запросы PUT.
	Putter interface {
		Put(*Context) error
	}
	// Patcher обрабатывает запросы PATCH.
	Patcher interface {
		Patch(*Context) error
	}
	// Deleter обрабатывает запросы DELETE.
	Deleter interface {
		Delete(*Context) error
	}
	// Header обрабатывает запросы HEAD.
	Header interface {
		Head(*Context) error
	}
	// Optioner обрабатывает запросы OPTIONS.
	Optioner interface {
		Options(*Context) error
	}
)

// Resource регистрирует ресурс для указанного пути: для каждого HTTP-метода,
// поддерживаемого ресурсом, регистрируется соответствующий обработчик.
//
//	type Hello struct{}
//
//	func (Hello) Get(c *res.Context) error {
//		return c.Send(res.JSON{"hello": c.Param("name")})
//	}
//
//	mux.Resource("/hello/:name", Hello{})
//
// Если объект не реализует ни одного из интерфейсов ресурса, то вызов
// заканчивается паникой.
func (mux *ServeMux) Resource(pattern string, resource interface{}) {
	var count int
	if h, ok := resource.(Getter); ok {
		mux.Handle("GET", pattern, Handler(h.Get))
		count++
	}
	if h, ok := resource.(Poster); ok {
		mux.Handle("POST", pattern, Handler(h.Post))
		count++
	}
	if h, ok := resource.(Putter); ok {
		mux.Handle("PUT", pattern, Handler(h.Put))
		count++
	}
	if h, ok := resource.(Patcher); ok {
		mux.Handle("PATCH", pattern, Handler(h.Patch))
		count++
	}
	if h, ok := resource.(Deleter); ok {
		mux.Handle("DELETE", pattern, Handler(h.Delete))
		count++
	}
	if h, ok := resource.(Header); ok {
		mux.Handle("HEAD", pattern, Handler(h.Head))
		count++
	}
	if h, ok := resource.(Optioner); ok {
		mux.Handle("OPTIONS", pattern, Handler(h.Options))
		count++
	}
	if count == 0 {
		panic(fmt.Errorf("res: %T does not support any HTTP method", resource))
	}
}

// Resources регистрирует сразу несколько ресурсов: ключом выступает шаблон
// пути.
func (mux *ServeMux) Resources(resources map[string]interface{}) {
	for pattern, resource := range resources {
		mux.Resource(pattern, resource)
	}
}
