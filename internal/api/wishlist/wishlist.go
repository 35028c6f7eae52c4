// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package wishlist provides the wishlist API handlers.
package wishlist

import (
	"log/slog"

	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// Wishlist serves the wishlist endpoints.
type Wishlist struct {
	db     *store.Database
	images *imagestore.Store
	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	db *store.Database,
	images *imagestore.Store,
	logger *slog.Logger,
) *Wishlist {
	return &Wishlist{
		db:     db,
		images: images,
		logger: logger,
	}
}

// entryView is one wishlisted destination.
type entryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Location string `json:"location"`
	Province string `json:"province"`
	Category string `json:"category"`
}

func (w *Wishlist) entryView(
	post *store.Destination,
) entryView {
	image := post.ImageKey
	if image != "" {
		image = w.images.PublicURL(image)
	}

	return entryView{
		ID:       post.ID,
		Name:     post.Name,
		Image:    image,
		Location: post.Location,
		Province: post.Province,
		Category: post.Category,
	}
}
