// Package mock provides in-memory doubles for the integration suite.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Relay is an in-memory stand-in for the cloud relay. It keeps per-user
// transaction and category snapshots and counts record-level calls so
// scenarios can assert that a quiescent sync pass stays off the network.
type Relay struct {
	mu sync.Mutex

	server *httptest.Server

	tokens       map[string]map[string]any // idToken -> user object
	emails       map[string]bool
	transactions map[int64]map[string]any
	categories   map[int64]map[string]any

	TxnCreates   int
	TxnUpdates   int
	TxnDeletes   int
	Reassigns    int
	CatCreates   int
	CatUpdates   int
	CatDeletes   int
	Seeds        int
	ImageUploads int
}

// NewRelay creates a relay mock with empty state.
func NewRelay() *Relay {
	return &Relay{
		tokens:       make(map[string]map[string]any),
		emails:       make(map[string]bool),
		transactions: make(map[int64]map[string]any),
		categories:   make(map[int64]map[string]any),
	}
}

// Start brings the HTTP server up.
func (r *Relay) Start() {
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
}

// Close shuts the HTTP server down.
func (r *Relay) Close() {
	if r.server != nil {
		r.server.Close()
	}
}

// URL returns the base URL of the running relay.
func (r *Relay) URL() string {
	return r.server.URL
}

// RegisterToken makes the given ID token resolve to a user on signin.
func (r *Relay) RegisterToken(idToken, userID, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[idToken] = map[string]any{"id": userID, "email": email}
	r.emails[email] = true
}

// SeedTransaction places a record in the remote snapshot without counting it.
func (r *Relay) SeedTransaction(record map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[asID(record["id"])] = record
}

// SeedCategory places a record in the remote snapshot without counting it.
func (r *Relay) SeedCategory(record map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[asID(record["id"])] = record
}

// TransactionCount returns the number of records in the remote snapshot.
func (r *Relay) TransactionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

// HasTransaction reports whether the remote snapshot holds the record.
func (r *Relay) HasTransaction(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.transactions[id]
	return ok
}

// RecordCalls returns the number of per-record create/update/delete calls
// received so far. Snapshot fetches, bulk seeds, reassigns, and image
// uploads are tracked separately.
func (r *Relay) RecordCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.TxnCreates + r.TxnUpdates + r.TxnDeletes + r.CatCreates + r.CatUpdates + r.CatDeletes
}

// ResetCounters zeroes the call counters, keeping the snapshots.
func (r *Relay) ResetCounters() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.TxnCreates, r.TxnUpdates, r.TxnDeletes, r.Reassigns = 0, 0, 0, 0
	r.CatCreates, r.CatUpdates, r.CatDeletes, r.Seeds = 0, 0, 0, 0
	r.ImageUploads = 0
}

func (r *Relay) handle(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var body map[string]any
	_ = json.NewDecoder(req.Body).Decode(&body)

	path := req.URL.Path
	switch {
	case path == "/api/auth/signup" && req.Method == http.MethodPost:
		r.handleSignUp(w, body)
	case path == "/api/auth/signin" && req.Method == http.MethodPost:
		r.handleSignIn(w, body)
	case path == "/api/transactions/get" && req.Method == http.MethodPost:
		writeJSON(w, http.StatusOK, values(r.transactions))
	case path == "/api/transactions/create" && req.Method == http.MethodPost:
		record, _ := body["transaction"].(map[string]any)
		r.transactions[asID(record["id"])] = record
		r.TxnCreates++
		writeOK(w)
	case path == "/api/transactions/reassign-category" && req.Method == http.MethodPost:
		r.reassign(asID(body["oldCategoryId"]), asID(body["newCategoryId"]))
		r.Reassigns++
		writeOK(w)
	case path == "/api/transactions/upload-image" && req.Method == http.MethodPost,
		path == "/api/transactions/update-image" && req.Method == http.MethodPut:
		r.ImageUploads++
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "imageUrl": "https://cdn.example.com/receipt.jpg"})
	case strings.HasPrefix(path, "/api/transactions/"):
		r.handleTransactionByID(w, req, body)
	case path == "/api/categories/get" && req.Method == http.MethodPost:
		writeJSON(w, http.StatusOK, values(r.categories))
	case path == "/api/categories/create" && req.Method == http.MethodPost:
		record, _ := body["category"].(map[string]any)
		r.categories[asID(record["id"])] = record
		r.CatCreates++
		writeOK(w)
	case path == "/api/categories/initial" && req.Method == http.MethodPost:
		records, _ := body["categories"].([]any)
		for _, raw := range records {
			record, _ := raw.(map[string]any)
			r.categories[asID(record["id"])] = record
		}
		r.Seeds++
		writeOK(w)
	case strings.HasPrefix(path, "/api/categories/"):
		r.handleCategoryByID(w, req, body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "unknown endpoint"})
	}
}

func (r *Relay) handleSignUp(w http.ResponseWriter, body map[string]any) {
	email, _ := body["email"].(string)
	if r.emails[email] {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "email already in use"})
		return
	}
	r.emails[email] = true
	user := map[string]any{"id": "user-" + email, "email": email}
	if name, ok := body["displayName"].(string); ok && name != "" {
		user["displayName"] = name
	}
	token := "tok-" + email
	r.tokens[token] = user
	writeJSON(w, http.StatusOK, map[string]any{"user": user, "idToken": token})
}

func (r *Relay) handleSignIn(w http.ResponseWriter, body map[string]any) {
	token, _ := body["idToken"].(string)
	user, ok := r.tokens[token]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unknown token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (r *Relay) handleTransactionByID(w http.ResponseWriter, req *http.Request, body map[string]any) {
	id, err := strconv.ParseInt(strings.TrimPrefix(req.URL.Path, "/api/transactions/"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "unknown endpoint"})
		return
	}
	switch req.Method {
	case http.MethodPut:
		record, _ := body["transaction"].(map[string]any)
		r.transactions[id] = record
		r.TxnUpdates++
	case http.MethodPost:
		delete(r.transactions, id)
		r.TxnDeletes++
	}
	writeOK(w)
}

func (r *Relay) handleCategoryByID(w http.ResponseWriter, req *http.Request, body map[string]any) {
	id, err := strconv.ParseInt(strings.TrimPrefix(req.URL.Path, "/api/categories/"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "unknown endpoint"})
		return
	}
	switch req.Method {
	case http.MethodPut:
		record, _ := body["category"].(map[string]any)
		r.categories[id] = record
		r.CatUpdates++
	case http.MethodPost:
		delete(r.categories, id)
		r.CatDeletes++
	}
	writeOK(w)
}

func (r *Relay) reassign(oldID, newID int64) {
	for _, record := range r.transactions {
		if asID(record["categoryId"]) == oldID {
			record["categoryId"] = newID
		}
	}
}

func values(records map[int64]map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, record)
	}
	return out
}

func asID(raw any) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
