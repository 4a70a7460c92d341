package res

import (
	"encoding/json"
	"net/http"
	"testing"
)

// user реализует ресурс с поддержкой методов GET, POST и DELETE.
type user struct{}

func (user) Get(c *Context) error {
	return c.Send(JSON{"user": c.Param("id")})
}

func (user) Post(c *Context) error {
	var data = make(JSON)
	if err := c.Parse(&data); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).Send(data)
}

func (user) Delete(c *Context) error {
	return c.Send(nil)
}

func TestResource(t *testing.T) {
	mux := new(ServeMux)
	mux.Resource("/user/:id", user{})

	resp := testRequest(t, mux, "GET", "/user/42", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Error("bad status:", resp.StatusCode)
	}
	var data = make(JSON)
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatal(err)
	}
	if data["user"] != "42" {
		t.Error("bad response:", data)
	}

	resp = testRequest(t, mux, "POST", "/user/42", `{"name":"test"}`,
		map[string]string{"Content-Type": "application/json"})
	if resp.StatusCode != http.StatusCreated {
		t.Error("bad status:", resp.StatusCode)
	}

	resp = testRequest(t, mux, "DELETE", "/user/42", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Error("bad status:", resp.StatusCode)
	}

	// метод, не поддерживаемый ресурсом
	resp = testRequest(t, mux, "PUT", "/user/42", "", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Error("bad status:", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow != "DELETE, GET, POST" {
		t.Error("bad Allow header:", allow)
	}

	// HEAD обслуживается обработчиком GET
	resp = testRequest(t, mux, "HEAD", "/user/42", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Error("bad status:", resp.StatusCode)
	}
}

func TestResources(t *testing.T) {
	mux := new(ServeMux)
	mux.Resources(map[string]interface{}{
		"/user/:id": user{},
	})
	resp := testRequest(t, mux, "GET", "/user/1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Error("bad status:", resp.StatusCode)
	}
}

func TestResourceEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("an empty resource must panic")
		}
	}()
	new(ServeMux).Resource("/test", struct{}{})
}
