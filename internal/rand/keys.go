// Package rand generates the random namespace keys used to segment
// checkouts inside the shared remote bucket.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

// the full alphanumeric range: keys must stay valid S3 path segments
const alphanums = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var (
	onceSource sync.Once
	rgen       *rand.Rand
	randMutex  sync.Mutex
)

func seed() {
	src := rand.NewSource(time.Now().UnixNano())
	rgen = rand.New(src) // #nosec
}

// KeyString returns a random string of length n, each position sampled
// uniformly from [A-Za-z0-9]. Safe for concurrent use.
func KeyString(n int) string {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	for i := range buf {
		buf[i] = alphanums[rgen.Intn(len(alphanums))]
	}
	randMutex.Unlock()
	return string(buf)
}
