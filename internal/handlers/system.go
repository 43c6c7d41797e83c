package handlers

import "net/http"

// Health answers liveness probes without touching any agent.
func Health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// NotFound is used for unknown paths and for known paths hit with the wrong
// method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "Not Found")
}
