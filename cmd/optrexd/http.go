package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/DrJosh9000/optrexlcd"
	"github.com/DrJosh9000/optrexlcd/render"
	"github.com/gorilla/mux"
)

type apiHandler struct {
	dev *optrexlcd.IM50240
}

type frameStatus struct {
	Text    string `json:"text"`
	Secure  bool   `json:"secure"`
	Clear   bool   `json:"clear"`
	Bits    string `json:"bits"`
	Latches uint64 `json:"latches"`
}

func (h *apiHandler) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)
	r.HandleFunc("/frame", h.getFrame).Methods("GET")
	r.HandleFunc("/frame.png", h.getFramePNG).Methods("GET")
	r.HandleFunc("/text/{text}", h.putText).Methods("PUT")
	r.HandleFunc("/uint/{value}", h.putUint).Methods("PUT")
	r.HandleFunc("/int/{value}", h.putInt).Methods("PUT")
	r.HandleFunc("/flag/{flag}/{state:on|off}", h.putFlag).Methods("PUT")
	r.HandleFunc("/clear", h.postClear).Methods("POST")
	r.HandleFunc("/wait", h.postWait).Methods("POST")
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

func (h *apiHandler) status() frameStatus {
	f := h.dev.Frame()
	return frameStatus{
		Text:    f.Text(),
		Secure:  f.Flag(optrexlcd.FlagSecure),
		Clear:   f.Flag(optrexlcd.FlagClear),
		Bits:    fmt.Sprintf("%040b", f.Bits()),
		Latches: h.dev.Latches(),
	}
}

func (h *apiHandler) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.status()); err != nil {
		log.Printf("Writing status: %v", err)
	}
}

func (h *apiHandler) getFrame(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w)
}

func (h *apiHandler) getFramePNG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := render.EncodePNG(w, h.dev.Frame()); err != nil {
		log.Printf("Encoding PNG: %v", err)
	}
}

func (h *apiHandler) putText(w http.ResponseWriter, r *http.Request) {
	h.dev.Display(mux.Vars(r)["text"])
	h.writeStatus(w)
}

func (h *apiHandler) putUint(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.ParseUint(mux.Vars(r)["value"], 10, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dev.DisplayUint(uint(v))
	h.writeStatus(w)
}

func (h *apiHandler) putInt(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.Atoi(mux.Vars(r)["value"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dev.DisplayInt(v)
	h.writeStatus(w)
}

func (h *apiHandler) putFlag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var flag optrexlcd.Flag
	switch vars["flag"] {
	case "secure":
		flag = optrexlcd.FlagSecure
	case "clear":
		flag = optrexlcd.FlagClear
	default:
		http.NotFound(w, r)
		return
	}
	h.dev.SetFlag(flag, vars["state"] == "on")
	h.writeStatus(w)
}

func (h *apiHandler) postClear(w http.ResponseWriter, r *http.Request) {
	h.dev.Clear()
	h.writeStatus(w)
}

// postWait returns after the next latch, so a client can pace its writes to
// the display.
func (h *apiHandler) postWait(w http.ResponseWriter, r *http.Request) {
	if err := h.dev.WaitLatchedContext(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.writeStatus(w)
}
