package models

import "testing"

func TestHasPriority(t *testing.T) {
	c := &Content{Priority: PriorityUnset}
	if c.HasPriority() {
		t.Error("sentinel priority should read as unset")
	}
	c.Priority = 1
	if !c.HasPriority() {
		t.Error("explicit priority not detected")
	}
}

func TestValidType(t *testing.T) {
	for _, ct := range []ContentType{ContentTypeNews, ContentTypeOpinion, ContentTypeBookReview, ContentTypeVideo} {
		if !ValidType(ct) {
			t.Errorf("%q should be valid", ct)
		}
	}
	if ValidType("podcast") {
		t.Error("unknown type accepted")
	}
}

func TestCategoryIsOpinion(t *testing.T) {
	if !(&Category{Serial: SerialOpinion}).IsOpinion() {
		t.Error("reserved serial not recognized")
	}
	if (&Category{Serial: 1}).IsOpinion() {
		t.Error("regular serial misread as opinion")
	}
}
