package domain

import (
	"reflect"
	"testing"
)

func TestPushRecent(t *testing.T) {
	tests := []struct {
		name string
		list []string
		term string
		max  int
		want []string
	}{
		{
			name: "push to empty",
			term: "golang",
			max:  3,
			want: []string{"golang"},
		},
		{
			name: "most recent first",
			list: []string{"b", "a"},
			term: "c",
			max:  5,
			want: []string{"c", "b", "a"},
		},
		{
			name: "existing term moves to front",
			list: []string{"b", "Golang", "a"},
			term: "golang",
			max:  5,
			want: []string{"golang", "b", "a"},
		},
		{
			name: "capped",
			list: []string{"c", "b", "a"},
			term: "d",
			max:  3,
			want: []string{"d", "c", "b"},
		},
		{
			name: "blank term ignored",
			list: []string{"a"},
			term: "  ",
			max:  3,
			want: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PushRecent(tt.list, tt.term, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PushRecent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPushRecent_DoesNotAlias(t *testing.T) {
	list := []string{"a", "b"}
	_ = PushRecent(list, "c", 2)
	if list[0] != "a" || list[1] != "b" {
		t.Errorf("PushRecent() mutated its input: %v", list)
	}
}

func TestMatchRecent(t *testing.T) {
	list := []string{"golang generics", "rust traits", "go modules", "gopher"}

	got := MatchRecent(list, "go", 2)
	want := []string{"golang generics", "go modules"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchRecent() = %v, want %v", got, want)
	}

	if got := MatchRecent(list, "", 5); got != nil {
		t.Errorf("MatchRecent() with empty query = %v, want nil", got)
	}
	if got := MatchRecent(list, "go", 0); got != nil {
		t.Errorf("MatchRecent() with zero limit = %v, want nil", got)
	}
}
