// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panelview serves what a panel shows as a never ending HTTP image
// stream.
//
// Each GET request receives a "multipart/x-mixed-replace" response (Motion
// JPEG, as served by IP cameras) with an initial snapshot, then one more part
// each time the source reports a change. PNG is the default image format;
// JPEG and BMP can be selected with Opts.Format or the "format" URL
// parameter.
package panelview
