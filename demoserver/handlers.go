package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HelloWorldHTML is the exact body served by the helloWorld page.
const HelloWorldHTML = "<html>\n  <body>\n    <p>hello world</p>\n  </body>\n</html>"

type pageDocument struct {
	HTML pageHTML `json:"html"`
}

type pageHTML struct {
	Body pageBody `json:"body"`
}

type pageBody struct {
	P string `json:"p"`
}

// Handler builds the route table for the demo app mounted under
// /<app>/.
func Handler(app string) http.Handler {
	prefix := "/" + app + "/"
	mux := http.NewServeMux()
	mux.HandleFunc(prefix+"helloWorld", handleHelloWorld)
	mux.HandleFunc(prefix+"indexJson", handleIndexJSON)
	mux.HandleFunc(prefix+"post", handlePost)
	mux.HandleFunc(prefix+"reverse", handleReverse)
	mux.HandleFunc(prefix+"notThere", handleNotThere)
	return mux
}

func handleHelloWorld(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, HelloWorldHTML)
}

func handleIndexJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pageDocument{
		HTML: pageHTML{Body: pageBody{P: "hello world"}},
	})
}

func handlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	fmt.Fprintf(w, "Successfully posted %s with method %s", formatParams(r.PostForm), r.Method)
}

func handleReverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	fmt.Fprint(w, reverse(r.PostForm.Get("string")))
}

func handleNotThere(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

// formatParams renders posted params as [key:[v1, v2], ...] with keys
// in sorted order so the output is stable.
func formatParams(form map[string][]string) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+":["+strings.Join(form[k], ", ")+"]")
	}
	return "[" + strings.Join(entries, ", ") + "]"
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
