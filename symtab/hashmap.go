package symtab

import "hash/fnv"

// stringMap is a hash map from string to *Label, chained-bucket style.
// It is adapted from flapc's FlapHashMap (hashmap.go): same bucket
// layout, same 0.75 load-factor resize trigger, re-keyed for strings
// since label names rather than uint64 values are what the symbol
// table actually indexes.
type stringMap struct {
	buckets []stringBucket
	size    int
	count   int
}

type stringBucket struct {
	key      string
	value    *Label
	occupied bool
	next     *stringBucket
}

func newStringMap(initialSize int) *stringMap {
	if initialSize < 16 {
		initialSize = 16
	}
	return &stringMap{
		buckets: make([]stringBucket, initialSize),
		size:    initialSize,
	}
}

func (m *stringMap) hash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

func (m *stringMap) Get(key string) (*Label, bool) {
	idx := m.hash(key) % uint64(m.size)
	bucket := &m.buckets[idx]

	if bucket.occupied && bucket.key == key {
		return bucket.value, true
	}
	for current := bucket.next; current != nil; current = current.next {
		if current.key == key {
			return current.value, true
		}
	}
	return nil, false
}

func (m *stringMap) Set(key string, value *Label) {
	idx := m.hash(key) % uint64(m.size)
	bucket := &m.buckets[idx]

	if !bucket.occupied {
		bucket.key = key
		bucket.value = value
		bucket.occupied = true
		m.count++
		return
	}
	if bucket.key == key {
		bucket.value = value
		return
	}

	prev := bucket
	for current := bucket.next; current != nil; current = current.next {
		if current.key == key {
			current.value = value
			return
		}
		prev = current
	}

	prev.next = &stringBucket{key: key, value: value, occupied: true}
	m.count++

	if float64(m.count)/float64(m.size) > 0.75 {
		m.resize()
	}
}

func (m *stringMap) resize() {
	old := m.buckets
	m.size *= 2
	m.buckets = make([]stringBucket, m.size)
	m.count = 0

	for i := range old {
		bucket := &old[i]
		if bucket.occupied {
			m.Set(bucket.key, bucket.value)
		}
		for current := bucket.next; current != nil; current = current.next {
			m.Set(current.key, current.value)
		}
	}
}

func (m *stringMap) Count() int { return m.count }
