package classify

// binaryMediaExts lists compressed and binary media formats where textual
// pattern matching only produces noise. Kept separate from extTable on
// purpose: membership here does not follow from the category (.svg, .dxf,
// .m3u are media-adjacent but plain text and stay scannable).
var binaryMediaExts = map[string]struct{}{
	// raster images
	".jpg": {}, ".jpeg": {}, ".jpe": {}, ".jfif": {}, ".png": {}, ".apng": {},
	".gif": {}, ".bmp": {}, ".dib": {}, ".tif": {}, ".tiff": {}, ".webp": {},
	".heic": {}, ".heif": {}, ".avif": {}, ".ico": {}, ".cur": {}, ".psd": {},
	".psb": {}, ".raw": {}, ".arw": {}, ".cr2": {}, ".cr3": {}, ".nef": {},
	".nrw": {}, ".orf": {}, ".rw2": {}, ".dng": {}, ".raf": {}, ".pef": {},
	".srw": {}, ".x3f": {}, ".mrw": {}, ".erf": {}, ".sr2": {}, ".xcf": {},
	".pcx": {}, ".tga": {}, ".exr": {}, ".hdr": {}, ".jp2": {}, ".j2k": {},
	".jpx": {}, ".wbmp": {}, ".jxl": {}, ".qoi": {},

	// video
	".mp4": {}, ".m4v": {}, ".mkv": {}, ".webm": {}, ".avi": {}, ".mov": {},
	".qt": {}, ".wmv": {}, ".asf": {}, ".flv": {}, ".f4v": {}, ".mpg": {},
	".mpeg": {}, ".mpe": {}, ".m1v": {}, ".m2v": {}, ".m2ts": {}, ".mts": {},
	".vob": {}, ".ogv": {}, ".3gp": {}, ".3g2": {}, ".mxf": {}, ".rm": {},
	".rmvb": {}, ".divx": {}, ".h264": {}, ".h265": {}, ".hevc": {},

	// audio
	".mp3": {}, ".wav": {}, ".wave": {}, ".flac": {}, ".aac": {}, ".m4a": {},
	".m4b": {}, ".ogg": {}, ".oga": {}, ".opus": {}, ".wma": {}, ".aiff": {},
	".aif": {}, ".aifc": {}, ".ape": {}, ".wv": {}, ".mpc": {}, ".amr": {},
	".mid": {}, ".midi": {}, ".mka": {}, ".ra": {}, ".au": {}, ".snd": {},
	".caf": {}, ".ac3": {}, ".dts": {},

	// fonts
	".ttf": {}, ".otf": {}, ".ttc": {}, ".otc": {}, ".woff": {}, ".woff2": {},
	".eot": {}, ".fon": {}, ".fnt": {},

	// binary 3D/CAD
	".dwg": {}, ".stl": {}, ".fbx": {}, ".3ds": {}, ".max": {}, ".blend": {},
	".skp": {}, ".glb": {},
}
