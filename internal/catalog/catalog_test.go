package catalog

import "testing"

func TestDefault(t *testing.T) {
	c := Default()
	if First(c.Platforms) != "Instagram" {
		t.Errorf("first platform = %q", First(c.Platforms))
	}
	if !Contains(c.AdviceKinds, AdviceDosDonts) || !Contains(c.AdviceKinds, AdviceTrends) {
		t.Errorf("advice kinds = %v", c.AdviceKinds)
	}
	if len(c.Categories) != 6 {
		t.Errorf("categories = %v", c.Categories)
	}
	if First(nil) != "" {
		t.Error("First(nil) should be empty")
	}
}
