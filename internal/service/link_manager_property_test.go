package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"childcare/internal/domainerrors"
	"childcare/internal/models"
	"childcare/internal/repository/memory"
)

// linkModel tracks the expected state: which IDs exist and which pairs are linked
type linkModel struct {
	children map[int64]bool
	parents  map[int64]bool
	links    map[models.Pair]string
}

func expectCode(t *rapid.T, err error, code domainerrors.Code) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if !domainerrors.HasCode(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestLinkManagerStateMachine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		children := memory.NewIDSet(1, 2)
		parents := memory.NewIDSet(1, 2)
		manager := NewGuardianChildLinkManager(memory.NewLinkStore[models.GuardianChildLink](), children, parents, WithLogger(zerolog.Nop()))

		model := linkModel{
			children: map[int64]bool{1: true, 2: true},
			parents:  map[int64]bool{1: true, 2: true},
			links:    map[models.Pair]string{},
		}

		// IDs 1-3 so unknown ids are drawn regularly
		id := rapid.Int64Range(1, 3)
		relationship := rapid.SampledFrom([]string{"", "mother", "father", "guardian"})

		t.Repeat(map[string]func(*rapid.T){
			"create": func(t *rapid.T) {
				pair := models.Pair{ParentID: id.Draw(t, "parent"), ChildID: id.Draw(t, "child")}
				rel := relationship.Draw(t, "relationship")

				created, err := manager.CreateLink(ctx, models.GuardianChildLink{GuardianID: pair.ParentID, ChildID: pair.ChildID, Relationship: rel})
				switch {
				case !model.children[pair.ChildID]:
					expectCode(t, err, domainerrors.CodeNotFound)
					if err.Error() != "child does not exist" {
						t.Fatalf("child check must run first, got %q", err)
					}
				case !model.parents[pair.ParentID]:
					expectCode(t, err, domainerrors.CodeNotFound)
				default:
					if _, linked := model.links[pair]; linked {
						expectCode(t, err, domainerrors.CodeConflict)
						return
					}
					expectCode(t, err, "")
					if created.Relationship != rel || created.LinkPair() != pair {
						t.Fatalf("created %+v, want pair %+v relationship %q", created, pair, rel)
					}
					model.links[pair] = rel
				}
			},
			"update": func(t *rapid.T) {
				pair := models.Pair{ParentID: id.Draw(t, "parent"), ChildID: id.Draw(t, "child")}
				rel := relationship.Draw(t, "relationship")

				err := manager.UpdateLink(ctx, models.GuardianChildLink{GuardianID: pair.ParentID, ChildID: pair.ChildID, Relationship: rel})
				if _, linked := model.links[pair]; !linked {
					expectCode(t, err, domainerrors.CodeNotFound)
					return
				}
				expectCode(t, err, "")
				model.links[pair] = rel
			},
			"remove": func(t *rapid.T) {
				pair := models.Pair{ParentID: id.Draw(t, "parent"), ChildID: id.Draw(t, "child")}

				err := manager.RemoveLink(ctx, pair.ParentID, pair.ChildID)
				if _, linked := model.links[pair]; !linked {
					expectCode(t, err, domainerrors.CodeNotFound)
					return
				}
				expectCode(t, err, "")
				delete(model.links, pair)
			},
			"listForChild": func(t *rapid.T) {
				childID := id.Draw(t, "child")

				links, err := manager.GuardiansForChild(ctx, childID)
				if !model.children[childID] {
					expectCode(t, err, domainerrors.CodeNotFound)
					return
				}
				expectCode(t, err, "")
				want := 0
				for pair := range model.links {
					if pair.ChildID == childID {
						want++
					}
				}
				if len(links) != want {
					t.Fatalf("listed %d links for child %d, want %d", len(links), childID, want)
				}
			},
			"": func(t *rapid.T) {
				for parentID := int64(1); parentID <= 3; parentID++ {
					for childID := int64(1); childID <= 3; childID++ {
						pair := models.Pair{ParentID: parentID, ChildID: childID}
						exists, err := manager.LinkExists(ctx, parentID, childID)
						if err != nil {
							t.Fatalf("LinkExists(%d, %d): %v", parentID, childID, err)
						}
						rel, linked := model.links[pair]
						if exists != linked {
							t.Fatalf("LinkExists(%d, %d) = %v, model says %v", parentID, childID, exists, linked)
						}
						if linked {
							checkRelationship(t, manager, pair, rel)
						}
					}
				}
			},
		})
	})
}

func checkRelationship(t *rapid.T, manager *GuardianChildLinkManager, pair models.Pair, want string) {
	links, err := manager.ChildrenForGuardian(context.Background(), pair.ParentID)
	if err != nil {
		t.Fatalf("ChildrenForGuardian(%d): %v", pair.ParentID, err)
	}
	for _, link := range links {
		if link.ChildID == pair.ChildID {
			if link.Relationship != want {
				t.Fatalf("relationship for %s = %q, want %q", fmt.Sprint(pair), link.Relationship, want)
			}
			return
		}
	}
	t.Fatalf("link %+v missing from guardian listing", pair)
}
