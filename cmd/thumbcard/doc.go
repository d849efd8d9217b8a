// Command thumbcard renders rich YouTube video cards from the command line.
//
//	thumbcard render dQw4w9WgXcQ https://youtu.be/9bZkp7q19f0 --out ./cards
//	thumbcard render dQw4w9WgXcQ --stdout > card.png
//	thumbcard info dQw4w9WgXcQ
//
// Configuration comes from the same TOML file and environment variables as
// the server (see package startup); --config names the file explicitly.
// RENDER_WORKERS or --workers bounds parallel renders.
package main
