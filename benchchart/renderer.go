// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

// A Renderer draws chart descriptions into artifact files under dir
// and returns the paths it wrote. Renderers see only the plain Chart
// data, so backends are interchangeable.
//
// Every artifact is written atomically: a chart file either appears
// complete or not at all.
type Renderer interface {
	Render(dir string, charts []*Chart) ([]string, error)
}
