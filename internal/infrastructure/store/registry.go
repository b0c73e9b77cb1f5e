package store

import (
	"reflect"
	"sort"

	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"

	"github.com/waste3d/vod-platform/internal/domain"
)

var (
	ErrUnregistered   = errors.New("entity kind is not registered")
	ErrRelationConfig = errors.New("invalid relation metadata")
)

// Entity registers a top-level collection, e.g. {Collection: "Courses", Model: domain.Course{}}.
type Entity struct {
	Collection string
	Model      interface{}
}

type RelationKind int

const (
	CollectionRelation RelationKind = iota
	ReferenceRelation
)

func (k RelationKind) String() string {
	if k == CollectionRelation {
		return "collection"
	}
	return "reference"
}

// Relation is a field of an entity that holds other registered entities.
type Relation struct {
	Field  string
	Kind   RelationKind
	Target reflect.Type
}

// Kind is the metadata of one registered entity type.
type Kind struct {
	Collection string
	Type       reflect.Type
	Relations  []Relation
}

func (k *Kind) New() interface{} {
	return reflect.New(k.Type).Interface()
}

func (k *Kind) fields(kind RelationKind) []string {
	var out []string
	for _, rel := range k.Relations {
		if rel.Kind == kind {
			out = append(out, rel.Field)
		}
	}
	return out
}

// Collections returns the names of the collection relations, in field order.
func (k *Kind) Collections() []string { return k.fields(CollectionRelation) }

// References returns the names of the single-entity relations, in field order.
func (k *Kind) References() []string { return k.fields(ReferenceRelation) }

// Registry holds the relation metadata of every registered entity, resolved once at startup.
type Registry struct {
	kinds        []*Kind
	byType       map[reflect.Type]*Kind
	byCollection map[string]*Kind
}

// Entities is the registration table of the video-on-demand model.
func Entities() []Entity {
	return []Entity{
		{Collection: "Courses", Model: domain.Course{}},
		{Collection: "Downloads", Model: domain.Download{}},
		{Collection: "Instructors", Model: domain.Instructor{}},
		{Collection: "Modules", Model: domain.Module{}},
		{Collection: "UserCourses", Model: domain.UserCourse{}},
		{Collection: "Videos", Model: domain.Video{}},
		{Collection: "Users", Model: domain.User{}},
	}
}

// NewRegistry resolves relations by name: a slice field named after a registered
// collection is a collection relation, a struct or pointer field whose plural name is a
// registered collection is a reference relation. Fields of unregistered types are ignored.
// A field holding a registered entity that cannot be resolved unambiguously is an error.
func NewRegistry(entities ...Entity) (*Registry, error) {
	r := &Registry{
		byType:       make(map[reflect.Type]*Kind, len(entities)),
		byCollection: make(map[string]*Kind, len(entities)),
	}

	for _, e := range entities {
		t := indirect(reflect.TypeOf(e.Model))
		if t == nil || t.Kind() != reflect.Struct {
			return nil, errors.Wrapf(ErrRelationConfig, "collection %q: model must be a struct", e.Collection)
		}
		if e.Collection == "" {
			return nil, errors.Wrapf(ErrRelationConfig, "%s: empty collection name", t.Name())
		}
		if _, dup := r.byCollection[e.Collection]; dup {
			return nil, errors.Wrapf(ErrRelationConfig, "collection %q registered twice", e.Collection)
		}
		if _, dup := r.byType[t]; dup {
			return nil, errors.Wrapf(ErrRelationConfig, "%s registered twice", t.Name())
		}
		k := &Kind{Collection: e.Collection, Type: t}
		r.kinds = append(r.kinds, k)
		r.byType[t] = k
		r.byCollection[e.Collection] = k
	}

	for _, k := range r.kinds {
		rels, err := r.resolve(k.Type)
		if err != nil {
			return nil, err
		}
		k.Relations = rels
	}
	return r, nil
}

// MustRegistry panics on invalid metadata. Meant for package-level wiring and tests.
func MustRegistry(entities ...Entity) *Registry {
	r, err := NewRegistry(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) resolve(t reflect.Type) ([]Relation, error) {
	var rels []Relation
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		direct, byName := r.byCollection[f.Name]
		plural, byPlural := r.byCollection[inflection.Plural(f.Name)]
		if byName && byPlural && direct != plural {
			return nil, errors.Wrapf(ErrRelationConfig, "%s.%s matches collections %q and %q",
				t.Name(), f.Name, direct.Collection, plural.Collection)
		}

		switch {
		case byName && f.Type.Kind() == reflect.Slice:
			if indirect(f.Type.Elem()) != direct.Type {
				return nil, errors.Wrapf(ErrRelationConfig, "%s.%s is named after %q but holds %s",
					t.Name(), f.Name, direct.Collection, f.Type.Elem())
			}
			rels = append(rels, Relation{Field: f.Name, Kind: CollectionRelation, Target: direct.Type})
		case byPlural && isStructLike(f.Type):
			if indirect(f.Type) != plural.Type {
				return nil, errors.Wrapf(ErrRelationConfig, "%s.%s is named after %q but holds %s",
					t.Name(), f.Name, plural.Collection, f.Type)
			}
			rels = append(rels, Relation{Field: f.Name, Kind: ReferenceRelation, Target: plural.Type})
		default:
			if target := r.entityIn(f.Type); target != nil {
				return nil, errors.Wrapf(ErrRelationConfig, "%s.%s holds %s but matches no registered collection",
					t.Name(), f.Name, target.Name())
			}
		}
	}
	return rels, nil
}

// entityIn reports the registered entity type carried by a field type, if any.
func (r *Registry) entityIn(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	t = indirect(t)
	if _, ok := r.byType[t]; ok {
		return t
	}
	return nil
}

func (r *Registry) lookup(t reflect.Type) (*Kind, error) {
	if k, ok := r.byType[indirect(t)]; ok {
		return k, nil
	}
	return nil, errors.Wrapf(ErrUnregistered, "%s", t)
}

// KindOf returns the metadata registered for model's type.
func (r *Registry) KindOf(model interface{}) (*Kind, error) {
	return r.lookup(reflect.TypeOf(model))
}

// Collection returns the metadata registered under a collection name.
func (r *Registry) Collection(name string) (*Kind, bool) {
	k, ok := r.byCollection[name]
	return k, ok
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []*Kind {
	out := make([]*Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// CollectionNames returns the registered collection names sorted alphabetically.
func (r *Registry) CollectionNames() []string {
	names := make([]string, 0, len(r.byCollection))
	for name := range r.byCollection {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// referencing lists the kinds holding a reference relation to target, with the field name.
func (r *Registry) referencing(target reflect.Type) map[*Kind][]string {
	out := map[*Kind][]string{}
	for _, k := range r.kinds {
		for _, rel := range k.Relations {
			if rel.Kind == ReferenceRelation && rel.Target == target {
				out[k] = append(out[k], rel.Field)
			}
		}
	}
	return out
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func isStructLike(t reflect.Type) bool {
	t = indirect(t)
	return t != nil && t.Kind() == reflect.Struct
}
