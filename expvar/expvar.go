// Package debugvar добавляет поддержку expvar в библиотеку res.
package debugvar

import (
	"expvar"
	"fmt"

	"github.com/mdigger/res"
)

// Path описывает путь обработчика для ExpVar. В отличие от стандартной
// библиотеки, здесь этот путь можно изменить.
var Path = "/debug/vars"

// Register регистрирует обработчик ExpVar среди обработчиков данного сервера.
// Используется для совместимости со стандартной библиотекой expvar.
func Register(mux *res.ServeMux) {
	mux.Handle("GET", Path, func(c *res.Context) error {
		c.SetHeader("Content-Type", "application/json; charset=utf-8")
		fmt.Fprintf(c, "{\n")
		first := true
		expvar.Do(func(kv expvar.KeyValue) {
			if !first {
				fmt.Fprintf(c, ",\n")
			}
			first = false
			fmt.Fprintf(c, "%q: %s", kv.Key, kv.Value)
		})
		fmt.Fprintf(c, "\n}\n")
		return nil
	})
}
