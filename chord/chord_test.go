package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/random"
	"github.com/stretchr/testify/assert"
)

func TestTones(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([3]int{0, 2, 4}, Tones(0))
	assert.Equal([3]int{4, 6, 1}, Tones(4))
	assert.Equal([3]int{6, 1, 3}, Tones(6))
	assert.True(IsTone(3, 5))
	assert.False(IsTone(3, 4))
}

func TestClosedProgressionsEndOnTonic(t *testing.T) {
	for _, mode := range key.Modes {
		for _, p := range Closed(mode) {
			assert.Equal(t, 0, p[len(p)-1], "mode %s", mode)
		}
		assert.Len(t, Open(mode), 3)
	}
}

func TestProgressionLengthMatchesMeasures(t *testing.T) {
	src := random.New(3)
	for _, mode := range key.Modes {
		for n := 1; n <= 16; n++ {
			name := fmt.Sprintf("%s/%d", mode, n)
			t.Run(name, func(t *testing.T) {
				p := Progression(src, mode, n)
				assert.Len(t, p, n)
				for _, root := range p {
					assert.True(t, root >= 0 && root < 7)
				}
				if n == 4 {
					assert.Equal(t, 0, p[3])
				}
			})
		}
	}
}

func TestTile(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{0, 3, 4, 0, 0, 3}, Tile([]int{0, 3, 4, 0}, 6))
	assert.Equal([]int{0, 3}, Tile([]int{0, 3, 4, 0}, 2))
	assert.Equal([]int{}, Tile(nil, 3))
}

func TestNumerals(t *testing.T) {
	c := key.MustResolve("C")
	assert.Equal(t, "I-IV-V-I", CreateProgressionKey(c, []int{0, 3, 4, 0}))
	assert.Equal(t, "ii", Numeral(c, 1))
	assert.Equal(t, "vii°", Numeral(c, 6))

	am := key.MustResolve("Am")
	assert.Equal(t, "i-iv-v-i", CreateProgressionKey(am, []int{0, 3, 4, 0}))
}
