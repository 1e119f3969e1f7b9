package repository

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
)

func TestItemFilter_BSON(t *testing.T) {
	category := int64(3)

	tests := []struct {
		name   string
		filter ItemFilter
		want   bson.M
	}{
		{name: "zero value matches everything", filter: ItemFilter{}, want: bson.M{}},
		{name: "featured only", filter: ItemFilter{FeaturedOnly: true}, want: bson.M{"is_featured_in_home_page": true}},
		{name: "by category", filter: ItemFilter{CategoryID: &category}, want: bson.M{"category._id": int64(3)}},
		{
			name:   "featured in category",
			filter: ItemFilter{FeaturedOnly: true, CategoryID: &category},
			want:   bson.M{"is_featured_in_home_page": true, "category._id": int64(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.filter.bson()); diff != "" {
				t.Errorf("bson() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListOptions(t *testing.T) {
	opts := listOptions(12, 24)
	if opts.Limit == nil || *opts.Limit != 12 {
		t.Errorf("limit = %v, want 12", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 24 {
		t.Errorf("skip = %v, want 24", opts.Skip)
	}
	if diff := cmp.Diff(byPriority, opts.Sort); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}

	if all := listOptions(0, 0); all.Limit != nil {
		t.Errorf("limit 0 should not set a limit, got %d", *all.Limit)
	}
}
