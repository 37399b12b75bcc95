package board

import (
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"
)

func TestNewPosition(t *testing.T) {
	is := is.New(t)

	p, err := NewPosition(3, 4, 2, 3)
	is.NoErr(err)
	is.Equal(p.Row(), 2)
	is.Equal(p.Col(), 3)
	is.Equal(p.Rows(), 3)
	is.Equal(p.Cols(), 4)
	is.Equal(p.Index(), 11)
	is.Equal(p.String(), "2,3")

	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		_, err := NewPosition(3, 4, rc[0], rc[1])
		is.True(errors.Is(err, ErrOutOfRange))
	}
}

func TestTranslate(t *testing.T) {
	is := is.New(t)
	p := MustPosition(3, 3, 1, 1)

	q, err := p.Translate(-1, 1)
	is.NoErr(err)
	is.Equal(q, MustPosition(3, 3, 0, 2))

	_, err = p.Translate(2, 0)
	is.True(errors.Is(err, ErrOutOfRange))
}

func TestParsePosition(t *testing.T) {
	is := is.New(t)

	p, err := ParsePosition(5, 5, " 4, 0 ")
	is.NoErr(err)
	is.Equal(p, MustPosition(5, 5, 4, 0))

	_, err = ParsePosition(5, 5, "40")
	is.True(err != nil)
	_, err = ParsePosition(5, 5, "a,1")
	is.True(err != nil)
	_, err = ParsePosition(5, 5, "5,0")
	is.True(errors.Is(err, ErrOutOfRange))
}

func TestPositionsOfDifferentBoardsDiffer(t *testing.T) {
	is := is.New(t)
	is.True(MustPosition(3, 3, 0, 0) != MustPosition(3, 4, 0, 0))
}

func TestMustPositionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustPosition did not panic")
		}
	}()
	MustPosition(2, 2, 2, 0)
}
