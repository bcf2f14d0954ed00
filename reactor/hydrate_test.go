package reactor_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/fastreactor/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateMap(t *testing.T) {
	tr := reactor.NewTracker()
	name := reactor.NewState(tr, "Austin")
	price := reactor.NewState(tr, 400_000)
	label := reactor.NewComputed(tr, func() string {
		return name.Get() + "!"
	})

	target := map[string]any{}
	cleanup, err := reactor.Hydrate(target, map[string]any{
		"name":   name,
		"label":  label,
		"price":  price,
		"source": "census",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "Austin",
		"label":  "Austin!",
		"price":  400_000,
		"source": "census",
	}, target)

	name.Set("Boise")
	assert.Equal(t, "Boise", target["name"])
	assert.Equal(t, "Boise!", target["label"])

	cleanup()
	name.Set("Tulsa")
	assert.Equal(t, "Boise", target["name"])
	assert.Equal(t, reactor.Lazy, label.Mode())
}

type metroView struct {
	Name   string
	Price  int64 `reactor:"median_price"`
	Tags   []string
	hidden string
}

func TestHydrateStruct(t *testing.T) {
	tr := reactor.NewTracker()
	price := reactor.NewState(tr, 250_000)
	tags := reactor.NewReactiveList(tr, "south")

	view := &metroView{}
	cleanup, err := reactor.Hydrate(view, map[string]any{
		"name":         "Dayton",
		"median_price": price,
		"tags":         tags,
	})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "Dayton", view.Name)
	assert.Equal(t, int64(250_000), view.Price)
	assert.Equal(t, []string{"south"}, view.Tags)

	price.Set(260_000)
	tags.Add("midwest")
	assert.Equal(t, int64(260_000), view.Price)
	assert.Equal(t, []string{"south", "midwest"}, view.Tags)
}

func TestHydrateErrors(t *testing.T) {
	tr := reactor.NewTracker()
	s := reactor.NewState(tr, "x")
	c := reactor.NewComputed(tr, s.Get)

	_, err := reactor.Hydrate(metroView{}, map[string]any{"name": "x"})
	assert.True(t, errors.Is(err, reactor.ErrInvalidTarget))

	// keys apply in sorted order, "name" subscribes before "zzz" fails
	_, err = reactor.Hydrate(&metroView{}, map[string]any{
		"name": c,
		"zzz":  1,
	})
	assert.True(t, errors.Is(err, reactor.ErrInvalidTarget))
	assert.Equal(t, reactor.Lazy, c.Mode())

	_, err = reactor.Hydrate(&metroView{}, map[string]any{"name": 12})
	assert.True(t, errors.Is(err, reactor.ErrInvalidTarget))

	_, err = reactor.Hydrate(&metroView{}, map[string]any{"hidden": "x"})
	assert.True(t, errors.Is(err, reactor.ErrInvalidTarget))
}

type ratesView struct {
	Rate   float32
	Term   uint8
	Count  int16
	Label  string
	Weight float64 `reactor:"count_as_float"`
}

func TestHydrateNumericWidths(t *testing.T) {
	tr := reactor.NewTracker()
	rate := reactor.NewState(tr, 6.5)
	term := reactor.NewState(tr, uint(30))

	view := &ratesView{}
	cleanup, err := reactor.Hydrate(view, map[string]any{
		"rate":  rate,
		"term":  term,
		"count": int64(7),
	})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, float32(6.5), view.Rate)
	assert.Equal(t, uint8(30), view.Term)
	assert.Equal(t, int16(7), view.Count)

	rate.Set(7.25)
	term.Set(15)
	assert.Equal(t, float32(7.25), view.Rate)
	assert.Equal(t, uint8(15), view.Term)

	// widths convert, classes don't
	for key, value := range map[string]any{
		"label":          65,
		"count":          1.5,
		"term":           -1,
		"count_as_float": 3,
	} {
		_, err := reactor.Hydrate(&ratesView{}, map[string]any{key: value})
		assert.ErrorIs(t, err, reactor.ErrInvalidTarget, key)
	}
}

// shout is a reactive defined outside the package.
type shout struct {
	src *reactor.State[string]
}

func (s shout) Peek() string {
	return s.src.Peek() + "!"
}

func (s shout) OnChange(fn func(string)) func() {
	return s.src.OnChange(func(v string) { fn(v + "!") })
}

func TestHydrateForeignReactive(t *testing.T) {
	tr := reactor.NewTracker()
	name := reactor.NewState(tr, "Austin")

	target := map[string]any{}
	view := &metroView{}
	cleanupMap, err := reactor.Hydrate(target, map[string]any{"name": shout{name}})
	require.NoError(t, err)
	cleanupView, err := reactor.Hydrate(view, map[string]any{"name": shout{name}})
	require.NoError(t, err)

	assert.Equal(t, "Austin!", target["name"])
	assert.Equal(t, "Austin!", view.Name)

	name.Set("Boise")
	assert.Equal(t, "Boise!", target["name"])
	assert.Equal(t, "Boise!", view.Name)

	cleanupMap()
	cleanupView()
	name.Set("Tulsa")
	assert.Equal(t, "Boise!", target["name"])
	assert.Equal(t, "Boise!", view.Name)
}
