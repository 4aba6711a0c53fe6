// SPDX-License-Identifier: GPL-2.0-or-later

package cache

import (
	"encoding/json"
	"os"

	"anicursor/conlog"
	"anicursor/image"
	"anicursor/model"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Save writes every entry to name as a protobuf Struct keyed like the cache.
func (c *Cache) Save(name string) error {
	snap := &structpb.Struct{Fields: make(map[string]*structpb.Value)}
	c.mu.RLock()
	for k, d := range c.m {
		b, err := json.Marshal(d)
		if err != nil {
			c.mu.RUnlock()
			return errors.Wrapf(err, "encode %s", k)
		}
		s := &structpb.Struct{}
		if err := s.UnmarshalJSON(b); err != nil {
			c.mu.RUnlock()
			return errors.Wrapf(err, "encode %s", k)
		}
		snap.Fields[k] = structpb.NewStructValue(s)
	}
	c.mu.RUnlock()
	out, err := proto.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "failed to encode cache")
	}
	if err := os.WriteFile(name, out, 0660); err != nil {
		return errors.Wrap(err, "failed to write cache file")
	}
	return nil
}

// Load adds the entries stored in name. A missing file is not an error.
// Entries already in the cache win over stored ones.
func (c *Cache) Load(name string) error {
	in, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	snap := &structpb.Struct{}
	if err := proto.Unmarshal(in, snap); err != nil {
		return errors.Wrap(err, "failed to decode cache")
	}
	for k, v := range snap.GetFields() {
		s := v.GetStructValue()
		if s == nil {
			conlog.Printf("cache %s: entry %s is not a descriptor", name, k)
			continue
		}
		b, err := s.MarshalJSON()
		if err != nil {
			return errors.Wrapf(err, "decode %s", k)
		}
		d := &model.Descriptor{}
		if err := json.Unmarshal(b, d); err != nil {
			return errors.Wrapf(err, "decode %s", k)
		}
		restore(d)
		c.Add(k, d)
	}
	return nil
}

// restore fills the fields that are derived from the image URLs.
func restore(d *model.Descriptor) {
	for i := range d.Images {
		img := &d.Images[i]
		if _, data, err := image.ParseDataURL(img.URL); err == nil {
			img.Data = data
		}
	}
	for i := range d.Keyframes {
		if img, ok := d.Image(d.Keyframes[i].FrameIndex); ok {
			d.Keyframes[i].URL = img.URL
		}
	}
}
