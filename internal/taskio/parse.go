package taskio

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/profit-solver/profit/internal/mapgrid"
	"github.com/profit-solver/profit/internal/simulate"
)

// depositAmountMultiplier is the fixed constant the data model ties a
// deposit's initial amount to: width * height * depositAmountMultiplier.
const depositAmountMultiplier = 5

// Parse reads a task JSON document (§6: width, height, objects, products,
// turns, time) and builds the immutable mapgrid.Map plus product catalog
// the solver needs. It parses with gjson rather than a discriminated struct
// because the "objects" array mixes deposit/obstacle/mine/factory/conveyor/
// combiner records with different field sets per kind.
func Parse(raw []byte) (*Task, error) {
	doc := gjson.ParseBytes(raw)
	if !doc.Exists() || !doc.IsObject() {
		return nil, fmt.Errorf("taskio: input is not a JSON object")
	}

	width := int(doc.Get("width").Int())
	height := int(doc.Get("height").Int())
	if width <= 0 || height <= 0 || width > 100 || height > 100 {
		return nil, fmt.Errorf("taskio: map dimensions %dx%d out of range (1-100)", width, height)
	}

	turns := int(doc.Get("turns").Int())
	if turns <= 0 || turns > 10000 {
		return nil, fmt.Errorf("taskio: turns %d out of range (1-10000)", turns)
	}

	timeBudget := doc.Get("time").Float()
	if timeBudget <= 0 {
		timeBudget = 20
	}

	m := mapgrid.New(width, height)

	var placeErr error
	doc.Get("objects").ForEach(func(_, obj gjson.Result) bool {
		if err := placeObject(m, obj); err != nil {
			placeErr = fmt.Errorf("object %q at (%d,%d): %w", obj.Get("type").String(), int(obj.Get("x").Int()), int(obj.Get("y").Int()), err)
			return false
		}
		return true
	})
	if placeErr != nil {
		return nil, fmt.Errorf("taskio: %w", placeErr)
	}

	products := map[int]*simulate.Product{}
	doc.Get("products").ForEach(func(_, p gjson.Result) bool {
		prod := &simulate.Product{
			ID:     int(p.Get("subtype").Int()),
			Points: int(p.Get("points").Int()),
		}
		resArr := p.Get("resources").Array()
		for i := 0; i < 8 && i < len(resArr); i++ {
			prod.Resources[i] = int(resArr[i].Int())
		}
		products[prod.ID] = prod
		return true
	})

	return &Task{
		Width: width, Height: height, Turns: turns, TimeBudget: timeBudget,
		Map: m, Products: products, BaseObjectCount: len(m.Objects),
	}, nil
}

func placeObject(m *mapgrid.Map, obj gjson.Result) error {
	x := int(obj.Get("x").Int())
	y := int(obj.Get("y").Int())

	switch ObjectKind(obj.Get("type").String()) {
	case KindDeposit:
		w, h := intOr(obj, "width", 1), intOr(obj, "height", 1)
		resource := int(obj.Get("subtype").Int())
		_, err := m.PlaceDeposit(resource, w*h*depositAmountMultiplier, x, y, w, h)
		return err
	case KindObstacle:
		w, h := intOr(obj, "width", 1), intOr(obj, "height", 1)
		_, err := m.PlaceObstacle(x, y, w, h)
		return err
	case KindMine:
		_, err := m.PlaceBuilding(mapgrid.KindMine, uint8(obj.Get("subtype").Int()), x, y)
		return err
	case KindConveyor:
		_, err := m.PlaceBuilding(mapgrid.KindConveyor, uint8(obj.Get("subtype").Int()), x, y)
		return err
	case KindCombiner:
		_, err := m.PlaceBuilding(mapgrid.KindCombiner, uint8(obj.Get("subtype").Int()), x, y)
		return err
	case KindFactory:
		// A factory's Subtype field doubles as its assigned product id
		// (the simulator looks up products[obj.Subtype] directly); the
		// shape itself has no rotation.
		_, err := m.PlaceBuilding(mapgrid.KindFactory, uint8(obj.Get("subtype").Int()), x, y)
		return err
	default:
		return fmt.Errorf("unrecognized object type %q", obj.Get("type").String())
	}
}

func intOr(v gjson.Result, key string, def int) int {
	r := v.Get(key)
	if !r.Exists() {
		return def
	}
	return int(r.Int())
}
