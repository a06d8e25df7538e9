// Package iconset models icon sets and resolves icon names to geometry.
//
// # Icon Sets
//
// Icon sets use the Iconify JSON layout: a prefix, a map of icons, an optional
// map of aliases and optional set-wide default geometry:
//
//	{
//	  "prefix": "mdi",
//	  "width": 24, "height": 24,
//	  "icons": {"home": {"body": "<path d=\"...\"/>"}},
//	  "aliases": {"home-flipped": {"parent": "home", "hFlip": true}}
//	}
//
// [Set.Icon] resolves a name to an [svg.Icon]. Geometry falls back from the
// icon, to the set defaults, to a 16x16 box at the origin. Aliases inherit from
// their parent: explicit fields override, rotations add up modulo 4 and flips
// toggle. Alias chains are limited to [MaxAliasDepth] links, which also stops
// cycles.
//
// # Names
//
// [ParseName] accepts the forms "@provider:prefix:name", "provider:prefix:name",
// "prefix:name" and "prefix-name" (split at the first dash). The empty provider
// is the default API provider.
//
// # Registry
//
// [Registry] holds loaded sets keyed by provider and prefix and is safe for
// concurrent use. Sets can be added from memory, files or directories; the
// remote loader in package loader adds fetched subsets the same way.
package iconset
