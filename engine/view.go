package engine

// ============================================================================
// RECORD VIEW — Indexed access to tabular rows
// ============================================================================
// Tabular sources (CSV, typed structs) reach the engine through this interface.
//
// Implementations:
//   SliceView      — wraps []Record (CSV helper)
//   DomainView[T]  — reads typed structs via accessor functions (JSON helper)
//   SubView        — subset of a parent view (indices, no copy)
//
// FamiliesFromView reads any of them into []Family.
// ============================================================================

// RecordView provides indexed access to a dataset.
// Measure reports 0 for a missing value; HasMeasure tells absent from zero.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	HasMeasure(index int, key string) bool
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
// Used by helpers.ParseFamiliesCSV.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView from a []Record slice.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

func (v *SliceView) cacheKeys() {
	if len(v.records) == 0 {
		return
	}
	dimSeen := make(map[string]bool)
	mesSeen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r.Dimensions {
			if !dimSeen[k] {
				dimSeen[k] = true
				v.dimKeys = append(v.dimKeys, k)
			}
		}
		for k := range r.Measures {
			if !mesSeen[k] {
				mesSeen[k] = true
				v.mesKeys = append(v.mesKeys, k)
			}
		}
	}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

func (v *SliceView) HasMeasure(i int, key string) bool {
	if i < 0 || i >= len(v.records) {
		return false
	}
	_, ok := v.records[i].Measures[key]
	return ok
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

// ============================================================================
// SUB VIEW — grouped subset
// ============================================================================

// SubView is a subset of a parent RecordView.
// Holds indices into the parent, one per grouped row.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) HasMeasure(i int, key string) bool {
	if i < 0 || i >= len(v.indices) {
		return false
	}
	return v.parent.HasMeasure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Resident]().
//	    Dimension("household", func(r Resident) string { return r.Household }).
//	    OptionalMeasure("age", func(r Resident) (float64, bool) {
//	        if r.Age == nil {
//	            return 0, false
//	        }
//	        return *r.Age, true
//	    })
//
//	families, err := engine.FamiliesFromView(adapter.Bind(residents), "household", "age")
//
// ============================================================================

// measureFunc reads a measure and reports whether the row carries it.
type measureFunc[T any] func(T) (float64, bool)

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimKeys  []string
	measKeys []string
	dims     map[string]func(T) string
	meas     map[string]measureFunc[T]
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]measureFunc[T]),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimKeys = append(a.dimKeys, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure every row carries.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	return a.OptionalMeasure(key, func(item T) (float64, bool) { return fn(item), true })
}

// OptionalMeasure registers a measure that some rows lack.
// HasMeasure reports false for those rows.
func (a *DomainAdapter[T]) OptionalMeasure(key string, fn func(T) (float64, bool)) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.measKeys = append(a.measKeys, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView over data. Holds a reference, no copy.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{adapter: a, data: data}
}

// DomainView reads typed structs through the accessors of its adapter.
type DomainView[T any] struct {
	adapter *DomainAdapter[T]
	data    []T
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.adapter.dims[key]
	if !ok || i < 0 || i >= len(v.data) {
		return ""
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	value, _ := v.measure(i, key)
	return value
}

func (v *DomainView[T]) HasMeasure(i int, key string) bool {
	_, ok := v.measure(i, key)
	return ok
}

func (v *DomainView[T]) measure(i int, key string) (float64, bool) {
	fn, ok := v.adapter.meas[key]
	if !ok || i < 0 || i >= len(v.data) {
		return 0, false
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) DimensionKeys() []string { return v.adapter.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.adapter.measKeys }
