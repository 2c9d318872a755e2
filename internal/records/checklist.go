package records

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/sanitize"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// Checklist manages checklist items.
type Checklist struct {
	items collection[models.ChecklistItem]
}

// NewChecklist creates a Checklist. A nil logger uses slog.Default().
func NewChecklist(kv storage.KV, gm *groups.Manager, logger *slog.Logger) *Checklist {
	return &Checklist{items: newCollection[models.ChecklistItem](kv, storage.KeyChecklistItems, gm, logger)}
}

// List returns the group's items in insertion order.
func (c *Checklist) List(ctx context.Context, sess session.Session, groupID string) ([]models.ChecklistItem, error) {
	items, _, err := c.items.list(ctx, sess, groupID)
	return items, err
}

// Add appends an open item to the group's checklist.
func (c *Checklist) Add(ctx context.Context, sess session.Session, groupID, text string) (models.ChecklistItem, error) {
	text = sanitize.Text(text)
	if text == "" {
		return models.ChecklistItem{}, fmt.Errorf("%w: item text is required", models.ErrValidation)
	}
	current, _, err := c.items.list(ctx, sess, groupID)
	if err != nil {
		return models.ChecklistItem{}, err
	}

	item := models.NewChecklistItem(groupID, text)
	if err := c.items.publish(ctx, groupID, append(current, item)); err != nil {
		return models.ChecklistItem{}, fmt.Errorf("failed to add checklist item: %w", err)
	}

	c.items.logger.Info("checklist item added", "group_id", groupID, "item_id", item.ID, "user_id", sess.UserID)
	return item, nil
}

// Toggle flips the completed flag of an item.
func (c *Checklist) Toggle(ctx context.Context, sess session.Session, itemID string) (models.ChecklistItem, error) {
	g, err := c.items.owner(ctx, sess, itemID)
	if err != nil {
		return models.ChecklistItem{}, err
	}
	return c.items.modify(ctx, g.ID, itemID, func(it *models.ChecklistItem) error {
		it.Completed = !it.Completed
		return nil
	})
}

// ToggleExecutor adds or removes memberID from the item's executors.
// memberID must be a member of the item's group.
func (c *Checklist) ToggleExecutor(ctx context.Context, sess session.Session, itemID, memberID string) (models.ChecklistItem, error) {
	g, err := c.items.owner(ctx, sess, itemID)
	if err != nil {
		return models.ChecklistItem{}, err
	}
	memberID = models.NormalizeUserID(memberID)
	if !g.HasMember(memberID) {
		return models.ChecklistItem{}, fmt.Errorf("%w: %s is not a member of group %s", models.ErrValidation, memberID, g.ID)
	}
	return c.items.modify(ctx, g.ID, itemID, func(it *models.ChecklistItem) error {
		if it.ExecutedBy == nil {
			it.ExecutedBy = []string{}
		}
		it.ToggleExecutor(memberID)
		return nil
	})
}

// Delete removes an item.
func (c *Checklist) Delete(ctx context.Context, sess session.Session, itemID string) error {
	g, err := c.items.owner(ctx, sess, itemID)
	if err != nil {
		return err
	}
	if _, err := c.items.remove(ctx, g.ID, itemID); err != nil {
		return err
	}
	c.items.logger.Info("checklist item deleted", "group_id", g.ID, "item_id", itemID, "user_id", sess.UserID)
	return nil
}

// Replace publishes items as the group's complete checklist. Items are re-tagged with
// groupID and executor lists are deduplicated. Ids must be unique and must not belong
// to another group's items. Any concurrent change to the group's
// checklist that items does not contain is overwritten.
func (c *Checklist) Replace(ctx context.Context, sess session.Session, groupID string, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	if _, err := c.items.groups.Get(ctx, sess, groupID); err != nil {
		return nil, err
	}

	out := make([]models.ChecklistItem, 0, len(items))
	for _, it := range items {
		it.Text = sanitize.Text(it.Text)
		if it.ID == "" || it.Text == "" {
			return nil, fmt.Errorf("%w: checklist items need an id and text", models.ErrValidation)
		}
		it.GroupID = groupID
		exec := []string{}
		for _, m := range it.ExecutedBy {
			if !slices.Contains(exec, m) {
				exec = append(exec, m)
			}
		}
		it.ExecutedBy = exec
		out = append(out, it)
	}

	if err := c.items.publish(ctx, groupID, out); err != nil {
		return nil, fmt.Errorf("failed to replace checklist: %w", err)
	}
	c.items.logger.Info("checklist replaced", "group_id", groupID, "count", len(out), "user_id", sess.UserID)
	return out, nil
}
