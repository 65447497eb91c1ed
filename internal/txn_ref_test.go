package internal

import (
	"github.com/stretchr/testify/assert"
	"regexp"
	"sync"
	"testing"
	"time"
)

func TestTimeReference(t *testing.T) {
	ref := TimeReference{}.Next(time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC))
	assert.Equal(t, "ORDER090703", ref)
}

func TestRandomReference(t *testing.T) {
	ref := RandomReference{}.Next(time.Now())
	assert.Regexp(t, regexp.MustCompile(`^ORDER[0-9a-f]{32}$`), ref)
	assert.NotEqual(t, ref, RandomReference{}.Next(time.Now()))
}

func TestSequenceReference_Unique(t *testing.T) {
	gen := NewSequenceReference("07", time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC))
	assert.Equal(t, "ORDER07240305090703000001", gen.Next(time.Now()))

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				ref := gen.Next(time.Now())
				mu.Lock()
				seen[ref] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 1000)
}

func TestNewReferenceGenerator(t *testing.T) {
	assert.IsType(t, TimeReference{}, NewReferenceGenerator("time", "01"))
	assert.IsType(t, &SequenceReference{}, NewReferenceGenerator("sequence", "01"))
	assert.IsType(t, RandomReference{}, NewReferenceGenerator("random", "01"))
	assert.IsType(t, RandomReference{}, NewReferenceGenerator("", "01"))
}
