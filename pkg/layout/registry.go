package layout

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/enum"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"go.uber.org/zap"
)

// Registry derives and memoizes class descriptors.
type Registry struct {
	enums *enum.Registry
	log   *zap.Logger

	classes   sync.Map // map[reflect.Type]*Class
	overrides sync.Map // map[reflect.Type]ClassOptions

	// buildLock serializes derivation so that every type is derived once.
	buildLock sync.Mutex
}

// DefaultRegistry uses enum.DefaultRegistry and doesn't log.
var DefaultRegistry = NewRegistry(enum.DefaultRegistry, nil)

var (
	timeType         = reflect.TypeOf(time.Time{})
	decimalType      = reflect.TypeOf(byteorder.Decimal{})
	serializableType = reflect.TypeOf((*io.Serializable)(nil)).Elem()
)

// NewRegistry creates a Registry resolving enumerations with enums. A nil
// log disables logging.
func NewRegistry(enums *enum.Registry, log *zap.Logger) *Registry {
	if enums == nil {
		enums = enum.DefaultRegistry
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{enums: enums, log: log}
}

// Enums returns the enumeration registry used.
func (r *Registry) Enums() *enum.Registry {
	return r.enums
}

// RegisterClass sets class options for t explicitly, they take precedence
// over the options from the blank field tag. It must be called before t is
// described for the first time.
func (r *Registry) RegisterClass(t reflect.Type, opts ClassOptions) error {
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", io.ErrInvalidArgument, t)
	}
	r.buildLock.Lock()
	defer r.buildLock.Unlock()
	if _, ok := r.classes.Load(t); ok {
		return fmt.Errorf("%w: %s is already described", io.ErrInvalidArgument, t)
	}
	r.overrides.Store(t, opts)
	return nil
}

// Describe returns the class descriptor for struct type t (or a pointer to
// it), deriving it on first use.
func (r *Registry) Describe(t reflect.Type) (*Class, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if c, ok := r.classes.Load(t); ok {
		return c.(*Class), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", io.ErrUnsupportedType, t)
	}

	r.buildLock.Lock()
	defer r.buildLock.Unlock()
	if c, ok := r.classes.Load(t); ok {
		return c.(*Class), nil
	}
	b := &builder{r: r, pending: make(map[reflect.Type]*Class)}
	c, err := b.class(t)
	if err != nil {
		return nil, err
	}
	for _, built := range b.order {
		built.computeBlocks()
	}
	for _, built := range b.order {
		r.classes.Store(built.Type, built)
		r.log.Debug("class described",
			zap.Stringer("type", built.Type),
			zap.Int("members", len(built.Members)),
			zap.Bool("explicit", built.Explicit),
			zap.Bool("inherit", built.Inherit()),
			zap.Stringer("offset", built.Offset))
	}
	return c, nil
}

// builder derives a group of classes, results are published only when the
// whole group succeeds.
type builder struct {
	r       *Registry
	pending map[reflect.Type]*Class
	order   []*Class
}

func (b *builder) class(t reflect.Type) (*Class, error) {
	if c, ok := b.r.classes.Load(t); ok {
		return c.(*Class), nil
	}
	if c, ok := b.pending[t]; ok {
		// Recursive types get the same (not yet complete) descriptor.
		return c, nil
	}
	c := &Class{Type: t, BaseIndex: -1}
	b.pending[t] = c
	b.order = append(b.order, c)

	var (
		classTagSeen bool
		fields       = make([]reflect.StructField, 0, t.NumField())
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			tag, ok := f.Tag.Lookup(TagKey)
			if !ok {
				continue
			}
			if classTagSeen {
				return nil, fmt.Errorf("%w: %s has more than one class tag", io.ErrInvalidArgument, t)
			}
			opts, err := parseClassTag(tag)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t, err)
			}
			c.ClassOptions = opts
			classTagSeen = true
			continue
		}
		if f.Anonymous && c.BaseIndex < 0 && f.Type.Kind() == reflect.Struct && f.Tag.Get(TagKey) != "-" {
			c.BaseIndex = i
			continue
		}
		fields = append(fields, f)
	}
	if opts, ok := b.r.overrides.Load(t); ok {
		c.ClassOptions = opts.(ClassOptions)
	}
	if c.BaseIndex >= 0 {
		base, err := b.class(t.Field(c.BaseIndex).Type)
		if err != nil {
			return nil, err
		}
		c.Base = base
	}

	for _, f := range fields {
		tag, tagged := f.Tag.Lookup(TagKey)
		if c.Explicit && !tagged {
			continue
		}
		mt, err := parseMemberTag(tag)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		if mt.skip {
			continue
		}
		if !f.IsExported() {
			if tagged {
				return nil, fmt.Errorf("%w: %s.%s is not exported", io.ErrUnsupportedType, t, f.Name)
			}
			continue
		}
		m, err := b.member(f.Name, f.Type, mt.length, mt.format)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		m.Index = f.Index[0]
		m.Order = mt.order
		c.Members = append(c.Members, m)
	}
	slices.SortStableFunc(c.Members, func(a, b *Member) int {
		switch {
		case a.Order < b.Order:
			return -1
		case a.Order > b.Order:
			return 1
		}
		return 0
	})
	return c, nil
}

func (b *builder) member(name string, t reflect.Type, length Opt[int], format Format) (*Member, error) {
	m := &Member{Name: name, Index: -1, Type: t, Format: format}

	if info, ok := b.r.enums.Lookup(t); ok {
		m.Kind = Enum
		m.Enum = info
		return m, b.noLength(m, length)
	}
	if reflect.PointerTo(t).Implements(serializableType) {
		m.Kind = Custom
		return m, b.noLength(m, length)
	}
	switch t {
	case timeType:
		m.Kind = Time
		return m, b.noLength(m, length)
	case decimalType:
		m.Kind = Decimal
		return m, b.noLength(m, length)
	}

	switch t.Kind() {
	case reflect.Bool:
		m.Kind = Bool
	case reflect.Int8:
		m.Kind = Int8
	case reflect.Int16:
		m.Kind = Int16
	case reflect.Int32:
		m.Kind = Int32
	case reflect.Int64:
		m.Kind = Int64
	case reflect.Uint8:
		m.Kind = Uint8
	case reflect.Uint16:
		m.Kind = Uint16
	case reflect.Uint32:
		m.Kind = Uint32
	case reflect.Uint64:
		m.Kind = Uint64
	case reflect.Float32:
		m.Kind = Float32
	case reflect.Float64:
		m.Kind = Float64
	case reflect.String:
		m.Kind = String
		m.Length = length
		return m, nil
	case reflect.Struct:
		c, err := b.class(t)
		if err != nil {
			return nil, err
		}
		m.Kind = Struct
		m.Class = c
	case reflect.Pointer:
		if t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: pointer to %s", io.ErrUnsupportedType, t.Elem())
		}
		elem, err := b.member(name, t.Elem(), Opt[int]{}, format)
		if err != nil {
			return nil, err
		}
		m.Kind = Pointer
		m.Elem = elem
	case reflect.Array, reflect.Slice:
		elem, err := b.member(name+"[]", t.Elem(), Opt[int]{}, format)
		if err != nil {
			return nil, err
		}
		m.Elem = elem
		m.Length = length
		if t.Kind() == reflect.Slice {
			m.Kind = Slice
			return m, nil
		}
		m.Kind = Array
		if length.Set && length.Value != t.Len() {
			return nil, fmt.Errorf("%w: declared length %d of %s", io.ErrLayoutMismatch, length.Value, t)
		}
		m.Length = Some(t.Len())
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", io.ErrUnsupportedType, t)
	}
	return m, b.noLength(m, length)
}

func (b *builder) noLength(m *Member, length Opt[int]) error {
	if length.Set {
		return fmt.Errorf("%w: fixed length on %s member", io.ErrInvalidArgument, m.Kind)
	}
	return nil
}

// Describe returns the class descriptor for t from DefaultRegistry.
func Describe(t reflect.Type) (*Class, error) {
	return DefaultRegistry.Describe(t)
}

// DescribeValue returns the class descriptor for the type of v from
// DefaultRegistry.
func DescribeValue(v any) (*Class, error) {
	return DefaultRegistry.Describe(reflect.TypeOf(v))
}
