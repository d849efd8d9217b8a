// Package media turns a video identifier into a cached card image.
//
// Generator.GetThumb is the entry point: it resolves metadata through a
// metadata.Provider, downloads the source thumbnail with a Downloader,
// decodes it (imaging first, libvips as a fallback), composes the card with
// the render package and stores the PNG under {cacheDir}/{videoID}_v4.png.
// An existing file at that path is returned without any further work.
package media
