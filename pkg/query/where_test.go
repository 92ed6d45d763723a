package query

import (
	"testing"

	"github.com/zhangbiao2009/primitive-db/pkg/storage"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

func rec(kv ...any) storage.Record {
	r := storage.Record{}
	for i := 0; i < len(kv); i += 2 {
		r[kv[i].(string)] = types.MustValueOf(kv[i+1])
	}
	return r
}

func TestMatches(t *testing.T) {
	alice := rec("ID", 1, "name", "Alice", "age", 30, "active", true)

	tests := []struct {
		name  string
		where Where
		want  bool
	}{
		{"nil where", nil, true},
		{"empty where", Where{}, true},
		{"equality hit", Where{"name": Eq(types.MustValueOf("Alice"))}, true},
		{"equality miss", Where{"name": Eq(types.MustValueOf("Bob"))}, false},
		{"greater", Where{"age": Cmp(OpGt, types.MustValueOf(20))}, true},
		{"greater miss", Where{"age": Cmp(OpGt, types.MustValueOf(30))}, false},
		{"greater or equal", Where{"age": Cmp(OpGe, types.MustValueOf(30))}, true},
		{"less", Where{"age": Cmp(OpLt, types.MustValueOf(31))}, true},
		{"less or equal miss", Where{"age": Cmp(OpLe, types.MustValueOf(29))}, false},
		{"not equal", Where{"name": Cmp(OpNe, types.MustValueOf("Bob"))}, true},
		{"bool equality", Where{"active": Eq(types.MustValueOf(true))}, true},
		{"string ordering", Where{"name": Cmp(OpLt, types.MustValueOf("Bob"))}, true},
		{"conjunction all hold", Where{"age": Cmp(OpGt, types.MustValueOf(18)), "name": Eq(types.MustValueOf("Alice"))}, true},
		{"conjunction one fails", Where{"age": Cmp(OpGt, types.MustValueOf(18)), "name": Eq(types.MustValueOf("Bob"))}, false},
		{"missing column", Where{"email": Eq(types.MustValueOf("a@b"))}, false},
		{"missing column with not equal", Where{"email": Cmp(OpNe, types.MustValueOf("a@b"))}, false},
		{"mismatched type equality", Where{"age": Eq(types.MustValueOf("30"))}, false},
		{"mismatched type ordering", Where{"name": Cmp(OpGt, types.MustValueOf(5))}, false},
		{"mismatched type not equal", Where{"name": Cmp(OpNe, types.MustValueOf(5))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(alice, tt.where); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.where, got, tt.want)
			}
		})
	}
}

func TestFilterSelectsByOperator(t *testing.T) {
	records := []storage.Record{
		rec("ID", 1, "age", 30),
		rec("ID", 2, "age", 15),
	}

	filter := Filter(Where{"age": Cmp(OpGt, types.MustValueOf(20))})
	var got []storage.Record
	for _, r := range records {
		if filter(r) {
			got = append(got, r)
		}
	}

	if len(got) != 1 {
		t.Fatalf("filtered %d records, want 1", len(got))
	}
	if id, _ := got[0].ID(); id != 1 {
		t.Errorf("filtered ID = %d, want 1", id)
	}
}

func TestWhereKey(t *testing.T) {
	a := Where{"name": Eq(types.MustValueOf("Bob")), "age": Cmp(OpGt, types.MustValueOf(3))}
	b := Where{"age": Cmp(OpGt, types.MustValueOf(3)), "name": Cmp("", types.MustValueOf("Bob"))}

	if a.Key() != b.Key() {
		t.Errorf("Key() differs for equal clauses: %s vs %s", a.Key(), b.Key())
	}

	intKey := Where{"v": Eq(types.MustValueOf(1))}.Key()
	strKey := Where{"v": Eq(types.MustValueOf("1"))}.Key()
	if intKey == strKey {
		t.Errorf("Key() does not distinguish int and string literals: %s", intKey)
	}

	var none Where
	if none.Key() == (Where{}).Key() {
		t.Errorf("nil and empty Where share key %s", none.Key())
	}
}

func TestParseOperator(t *testing.T) {
	for _, op := range Operators {
		got, ok := ParseOperator(string(op))
		if !ok || got != op {
			t.Errorf("ParseOperator(%q) = (%q, %v)", op, got, ok)
		}
	}
	if _, ok := ParseOperator("=="); ok {
		t.Errorf("ParseOperator(\"==\") ok = true, want false")
	}
}

func TestWhereString(t *testing.T) {
	w := Where{"name": Eq(types.MustValueOf("Bob")), "age": Cmp(OpGe, types.MustValueOf(3))}
	want := `age >= 3 and name = "Bob"`
	if got := w.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
