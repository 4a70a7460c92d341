package res

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type bindData struct {
	Name    string   `form:"username"`
	Age     int
	Rate    float64
	Active  bool
	Tags    []string
	private string
}

func TestBindForm(t *testing.T) {
	form := url.Values{
		"username": {"test"},
		"age":      {"42"},
		"rate":     {"0.5"},
		"active":   {"true"},
		"tags":     {"a", "b"},
		"private":  {"skip"},
	}
	r := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var data bindData
	if err := Bind(r, &data); err != nil {
		t.Fatal(err)
	}
	if data.Name != "test" || data.Age != 42 || data.Rate != 0.5 ||
		!data.Active || len(data.Tags) != 2 {
		t.Errorf("bad bound data: %+v", data)
	}
	if data.private != "" {
		t.Error("private fields must be skipped")
	}
}

func TestBindQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?username=test&age=7", nil)
	var data bindData
	if err := Bind(r, &data); err != nil {
		t.Fatal(err)
	}
	if data.Name != "test" || data.Age != 7 {
		t.Errorf("bad bound data: %+v", data)
	}
}

func TestBindJSON(t *testing.T) {
	r := httptest.NewRequest("PUT", "/",
		strings.NewReader(`{"Name":"test","Age":42}`))
	r.Header.Set("Content-Type", "application/json")
	var data bindData
	if err := Bind(r, &data); err != nil {
		t.Fatal(err)
	}
	if data.Name != "test" || data.Age != 42 {
		t.Errorf("bad bound data: %+v", data)
	}
}

func TestBindXML(t *testing.T) {
	r := httptest.NewRequest("POST", "/",
		strings.NewReader(`<bindData><Name>test</Name></bindData>`))
	r.Header.Set("Content-Type", "application/xml")
	var data bindData
	if err := Bind(r, &data); err != nil {
		t.Fatal(err)
	}
	if data.Name != "test" {
		t.Errorf("bad bound data: %+v", data)
	}
}

func TestBindErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("data"))
	var data bindData
	if err := Bind(r, &data); err != ErrEmptyContentType {
		t.Error("empty content type must be rejected:", err)
	}

	r.Header.Set("Content-Type", "application/octet-stream")
	if err := Bind(r, &data); err != ErrUnsupportedContentType {
		t.Error("unsupported content type must be rejected:", err)
	}

	r.Header.Set("Content-Type", `application/json; charset="windows-1251"`)
	if err := Bind(r, &data); err != ErrUnsupportedCharset {
		t.Error("unsupported charset must be rejected:", err)
	}

	r = httptest.NewRequest("DELETE", "/", nil)
	if err := Bind(r, &data); err != ErrUnsupportedHTTPMethod {
		t.Error("unsupported method must be rejected:", err)
	}
}
