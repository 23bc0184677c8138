// Package form drives the lifecycle of one inspection being filled in,
// from a profile-seeded draft to a validated, persisted record.
package form

import (
	"context"
	"errors"
	"time"

	"github.com/crodriguezm/sgsst/model"
)

var (
	ErrLastItem   = errors.New("cannot remove the last item")
	ErrNoSuchItem = errors.New("no item with that id")
)

// IDGen mints local ids for new line items.
type IDGen func() string

// Saver is the record store slice the controller needs to submit.
type Saver interface {
	Insert(ctx context.Context, ins *model.Inspection) error
	Update(ctx context.Context, ins model.Inspection) error
}

// Controller holds one in-progress inspection.
type Controller struct {
	ins model.Inspection
	gen IDGen
}

// New starts a fresh draft for the variant, seeded from the tenant
// profile, dated today, with a minted consecutive and one blank item.
func New(v model.Variant, profile model.Profile, gen IDGen) (*Controller, error) {
	item, err := model.EmptyItem(v, gen())
	if err != nil {
		return nil, err
	}

	return &Controller{
		ins: model.Inspection{
			Variant:             v,
			Consecutive:         model.NewConsecutive(v),
			ClientCode:          profile.ClientCode,
			Date:                time.Now().Format("2006-01-02"),
			BuildingName:        profile.BuildingName,
			Nit:                 profile.Nit,
			Address:             profile.Address,
			LegalRepresentative: profile.LegalRepresentative,
			InspectorName:       profile.InspectorName,
			InspectorEmail:      profile.Email,
			Items:               []model.Item{item},
		},
		gen: gen,
	}, nil
}

// Resume wraps an inspection that arrived from outside, minting a
// consecutive if it never got one.
func Resume(ins model.Inspection, gen IDGen) (*Controller, error) {
	if _, err := ins.Variant.Collection(); err != nil {
		return nil, err
	}
	if ins.Consecutive == "" {
		ins.Consecutive = model.NewConsecutive(ins.Variant)
	}
	return &Controller{ins: ins, gen: gen}, nil
}

// Inspection returns the current draft state.
func (c *Controller) Inspection() model.Inspection {
	return c.ins
}

// AddItem appends a blank item and returns it.
func (c *Controller) AddItem() (model.Item, error) {
	item, err := model.EmptyItem(c.ins.Variant, c.gen())
	if err != nil {
		return nil, err
	}
	c.ins.Items = append(c.ins.Items, item)
	return item, nil
}

// UpdateItem replaces the item with the given id, keeping its position.
func (c *Controller) UpdateItem(id string, item model.Item) error {
	for i, prev := range c.ins.Items {
		if prev.ItemID() == id {
			c.ins.Items[i] = item
			return nil
		}
	}
	return ErrNoSuchItem
}

// RemoveItem drops an item; a form always keeps at least one.
func (c *Controller) RemoveItem(id string) error {
	if len(c.ins.Items) == 1 {
		return ErrLastItem
	}
	for i, item := range c.ins.Items {
		if item.ItemID() == id {
			c.ins.Items = append(c.ins.Items[:i], c.ins.Items[i+1:]...)
			return nil
		}
	}
	return ErrNoSuchItem
}

// SetSignature attaches the encoded signature asset.
func (c *Controller) SetSignature(uri string) {
	c.ins.SignatureURL = uri
}

// Submit validates the draft and persists it, inserting on first save
// and updating thereafter. On insert the controller learns the record id.
func (c *Controller) Submit(ctx context.Context, s Saver) error {
	if err := c.ins.Validate(); err != nil {
		return err
	}
	if c.ins.ID == 0 {
		return s.Insert(ctx, &c.ins)
	}
	return s.Update(ctx, c.ins)
}
