package apiclient

import "sync"

// QueryCache respuestas de lectura agrupadas por colección. Las entradas viven hasta que una
// escritura invalida su colección; no hay expiración por tiempo.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte // colección -> clave -> cuerpo
}

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: map[string]map[string][]byte{}}
}

// Get devuelve una copia del cuerpo guardado.
func (q *QueryCache) Get(collection, key string) ([]byte, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	b, ok := q.entries[collection][key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

func (q *QueryCache) Set(collection, key string, body []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	byKey, ok := q.entries[collection]
	if !ok {
		byKey = map[string][]byte{}
		q.entries[collection] = byKey
	}
	byKey[key] = append([]byte(nil), body...)
}

// Invalidate descarta todas las entradas de las colecciones indicadas.
func (q *QueryCache) Invalidate(collections ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, c := range collections {
		delete(q.entries, c)
	}
}

// Len número total de entradas.
func (q *QueryCache) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	n := 0
	for _, byKey := range q.entries {
		n += len(byKey)
	}
	return n
}
