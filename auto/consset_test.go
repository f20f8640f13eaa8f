package auto_test

import (
	"testing"

	"github.com/andrewhickman/mlsub"
	"github.com/andrewhickman/mlsub/auto"
	"github.com/andrewhickman/mlsub/examples/mlty"
)

func TestConstructorSetAddMergesSameComponent(t *testing.T) {
	var s auto.ConstructorSet[mlty.Cons]
	s.Add(mlsub.Pos, mlty.Fun(auto.NewStateSet(1), auto.NewStateSet(2)))
	s.Add(mlsub.Pos, mlty.Fun(auto.NewStateSet(3), auto.NewStateSet(4)))
	if s.Len() != 1 {
		t.Fatalf("Add: got %d components, want 1 (Fun should have merged)", s.Len())
	}
	c, ok := s.Get(mlty.FunComponent)
	if !ok {
		t.Fatalf("Get: Fun component missing")
	}
	params := c.Params()
	if len(params) != 2 {
		t.Fatalf("Params: got %d, want 2", len(params))
	}
}

func TestConstructorSetGetMissing(t *testing.T) {
	var s auto.ConstructorSet[mlty.Cons]
	s.Add(mlsub.Pos, mlty.Bool())
	if _, ok := s.Get(mlty.FunComponent); ok {
		t.Fatalf("Get: found a component that was never added")
	}
}

func TestConstructorSetIntersection(t *testing.T) {
	var a, b auto.ConstructorSet[mlty.Cons]
	a.Add(mlsub.Pos, mlty.Bool())
	a.Add(mlsub.Pos, mlty.Fun(auto.NewStateSet(1), auto.NewStateSet(2)))
	b.Add(mlsub.Neg, mlty.Bool())

	pairs := a.Intersection(&b)
	if len(pairs) != 1 {
		t.Fatalf("Intersection: got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Left.Component() != mlty.BoolComponent {
		t.Fatalf("Intersection: wrong shared component %v", pairs[0].Left.Component())
	}
}

func TestConstructorSetClone(t *testing.T) {
	var s auto.ConstructorSet[mlty.Cons]
	s.Add(mlsub.Pos, mlty.Bool())
	clone := s.Clone()
	clone.Add(mlsub.Pos, mlty.Fun(auto.NewStateSet(1), auto.NewStateSet(2)))
	if s.Len() != 1 {
		t.Fatalf("Clone: mutating the clone affected the original")
	}
	if clone.Len() != 2 {
		t.Fatalf("Clone: got %d components, want 2", clone.Len())
	}
}
