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

// Package destination provides the destination post API handlers. Post
// creation and deletion keep the policy engine's ownership grants in
// sync through the grant lifecycle manager.
package destination

import (
	"log/slog"
	"time"

	"github.com/telusuri/telusuri/internal/authz"
	"github.com/telusuri/telusuri/internal/imagestore"
	"github.com/telusuri/telusuri/internal/store"
)

// destinationImageDir is the object key directory of post images.
const destinationImageDir = "destination"

// Destination serves the post endpoints.
type Destination struct {
	db      *store.Database
	manager *authz.Manager
	images  *imagestore.Store
	logger  *slog.Logger
}

// New factory to create a new instance.
func New(
	db *store.Database,
	manager *authz.Manager,
	images *imagestore.Store,
	logger *slog.Logger,
) *Destination {
	return &Destination{
		db:      db,
		manager: manager,
		images:  images,
		logger:  logger,
	}
}

type authorView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

type ratingView struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type postView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Detail     string      `json:"detail,omitempty"`
	Location   string      `json:"location"`
	Province   string      `json:"province"`
	Category   string      `json:"category"`
	Image      string      `json:"image"`
	Author     *authorView `json:"author,omitempty"`
	Rating     *ratingView `json:"rating,omitempty"`
	Wishlisted *bool       `json:"isWishlisted,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func (d *Destination) imageURL(
	key string,
) string {
	if key == "" {
		return ""
	}

	return d.images.PublicURL(key)
}

func (d *Destination) postView(
	post *store.Destination,
) postView {
	view := postView{
		ID:        post.ID,
		Name:      post.Name,
		Detail:    post.Detail,
		Location:  post.Location,
		Province:  post.Province,
		Category:  post.Category,
		Image:     d.imageURL(post.ImageKey),
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		view.Author = &authorView{
			ID:           post.Author.ID,
			Name:         post.Author.Name,
			Username:     post.Author.Username,
			ProfileImage: d.imageURL(post.Author.ProfileImage),
		}
	}

	return view
}
