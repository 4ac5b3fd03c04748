//go:build !tinygo

package systikki

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed boards.yaml
var rawBoards []byte

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrDuplicateBoard = errors.New("board defined twice")
)

type Boards []BoardInfo
type BoardInfo struct {
	Name    string `yaml:"name"`
	ClockHz uint32 `yaml:"clockHz"`
	Base    uint32 `yaml:"base"`
}

//ReloadFor gives reload for period on this board
func (p BoardInfo) ReloadFor(period time.Duration) (uint32, error) {
	r, err := ReloadFor(p.ClockHz, period)
	if err != nil {
		return 0, fmt.Errorf("board %s: %w", p.Name, err)
	}
	return r, nil
}

//KnownBoards are the embedded profiles
func KnownBoards() Boards {
	b, err := ParseBoards(rawBoards)
	if err != nil {
		panic(err) //embedded file is broken, build problem
	}
	return b
}

//boardEntry is file form of BoardInfo. Missing base means SYSTICKBASE, explicit 0 is kept
type boardEntry struct {
	Name    string  `yaml:"name"`
	ClockHz uint32  `yaml:"clockHz"`
	Base    *uint32 `yaml:"base"`
}

func ParseBoards(data []byte) (Boards, error) {
	var entries []boardEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse boards: %w", err)
	}
	b := make(Boards, 0, len(entries))
	for _, e := range entries {
		info := BoardInfo{Name: strings.ToLower(e.Name), ClockHz: e.ClockHz, Base: SYSTICKBASE}
		if e.Base != nil {
			info.Base = *e.Base
		}
		if info.ClockHz == 0 {
			return nil, fmt.Errorf("board %q: %w", info.Name, ErrNoClock)
		}
		if slices.IndexFunc(b, func(o BoardInfo) bool { return o.Name == info.Name }) >= 0 {
			return nil, fmt.Errorf("board %q: %w", info.Name, ErrDuplicateBoard)
		}
		b = append(b, info)
	}
	return b, nil
}

func LoadBoards(path string) (Boards, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBoards(data)
}

//Merge returns boards with extra added. Extra entry replaces one with same name
func (t Boards) Merge(extra Boards) Boards {
	result := slices.Clone(t)
	for _, e := range extra {
		i := slices.IndexFunc(result, func(b BoardInfo) bool { return b.Name == e.Name })
		if i < 0 {
			result = append(result, e)
		} else {
			result[i] = e
		}
	}
	return result
}

func (t Boards) Find(name string) (BoardInfo, error) {
	name = strings.ToLower(name)
	i := slices.IndexFunc(t, func(b BoardInfo) bool { return b.Name == name })
	if i < 0 {
		return BoardInfo{}, fmt.Errorf("%q: %w", name, ErrBoardNotFound)
	}
	return t[i], nil
}

//Sorted by name
func (t Boards) Sorted() Boards {
	result := slices.Clone(t)
	slices.SortFunc(result, func(a, b BoardInfo) bool { return a.Name < b.Name })
	return result
}
