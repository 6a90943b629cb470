// Package screenshot captures project sites at fixed viewport sizes into the
// local gallery directories, where the media sync pass picks them up like any
// other asset. Captures are marked by filename prefix so re-runs skip
// viewports that already have one.
package screenshot
