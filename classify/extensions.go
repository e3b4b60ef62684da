package classify

// extTable is the extension-to-category mapping. One category per key;
// ambiguous extensions (.ts, .obj, .sav, .vcf, ...) were settled once when
// the table was curated and stay settled here. Keys are lower-case with a
// leading dot.
var extTable = map[string]Category{
	// text
	".txt":        Text,
	".text":       Text,
	".md":         Text,
	".markdown":   Text,
	".mdown":      Text,
	".rst":        Text,
	".adoc":       Text,
	".asciidoc":   Text,
	".log":        Text,
	".csv":        Text,
	".tsv":        Text,
	".psv":        Text,
	".ini":        Text,
	".cfg":        Text,
	".conf":       Text,
	".config":     Text,
	".toml":       Text,
	".yaml":       Text,
	".yml":        Text,
	".json":       Text,
	".jsonl":      Text,
	".ndjson":     Text,
	".nfo":        Text,
	".diz":        Text,
	".srt":        Text,
	".sub":        Text,
	".vtt":        Text,
	".sbv":        Text,
	".po":         Text,
	".properties": Text,
	".env":        Text,
	".dic":        Text,

	// code
	".c":      Code,
	".h":      Code,
	".cpp":    Code,
	".cc":     Code,
	".cxx":    Code,
	".hpp":    Code,
	".hh":     Code,
	".hxx":    Code,
	".go":     Code,
	".rs":     Code,
	".py":     Code,
	".pyw":    Code,
	".pyi":    Code,
	".rb":     Code,
	".erb":    Code,
	".pl":     Code,
	".pm":     Code,
	".t":      Code,
	".php":    Code,
	".php3":   Code,
	".php4":   Code,
	".php5":   Code,
	".phtml":  Code,
	".java":   Code,
	".kt":     Code,
	".kts":    Code,
	".scala":  Code,
	".groovy": Code,
	".cs":     Code,
	".vb":     Code,
	".fs":     Code,
	".fsx":    Code,
	".swift":  Code,
	".m":      Code,
	".mm":     Code,
	".js":     Code,
	".mjs":    Code,
	".cjs":    Code,
	".jsx":    Code,
	".ts":     Code,
	".tsx":    Code,
	".coffee": Code,
	".dart":   Code,
	".lua":    Code,
	".r":      Code,
	".jl":     Code,
	".hs":     Code,
	".lhs":    Code,
	".erl":    Code,
	".hrl":    Code,
	".ex":     Code,
	".exs":    Code,
	".clj":    Code,
	".cljs":   Code,
	".cljc":   Code,
	".lisp":   Code,
	".lsp":    Code,
	".el":     Code,
	".scm":    Code,
	".rkt":    Code,
	".ml":     Code,
	".mli":    Code,
	".nim":    Code,
	".zig":    Code,
	".v":      Code,
	".sv":     Code,
	".vhdl":   Code,
	".asm":    Code,
	".s":      Code,
	".nasm":   Code,
	".pas":    Code,
	".pp":     Code,
	".d":      Code,
	".adb":    Code,
	".ads":    Code,
	".f":      Code,
	".f77":    Code,
	".f90":    Code,
	".f95":    Code,
	".for":    Code,
	".cob":    Code,
	".cbl":    Code,
	".bas":    Code,
	".tcl":    Code,
	".awk":    Code,
	".sed":    Code,
	".sh":     Code,
	".bash":   Code,
	".zsh":    Code,
	".fish":   Code,
	".ksh":    Code,
	".csh":    Code,
	".bat":    Code,
	".cmd":    Code,
	".ps1":    Code,
	".psm1":   Code,
	".psd1":   Code,
	".vbs":    Code,
	".vbe":    Code,
	".wsf":    Code,
	".wsh":    Code,
	".ahk":    Code,
	".au3":    Code,
	".gradle": Code,
	".cmake":  Code,
	".mk":     Code,
	".tf":     Code,
	".hcl":    Code,
	".proto":  Code,

	// image
	".jpg":  Image,
	".jpeg": Image,
	".jpe":  Image,
	".jfif": Image,
	".png":  Image,
	".apng": Image,
	".gif":  Image,
	".bmp":  Image,
	".dib":  Image,
	".tif":  Image,
	".tiff": Image,
	".webp": Image,
	".heic": Image,
	".heif": Image,
	".avif": Image,
	".ico":  Image,
	".cur":  Image,
	".svg":  Image,
	".psd":  Image,
	".psb":  Image,
	".ai":   Image,
	".eps":  Image,
	".raw":  Image,
	".arw":  Image,
	".cr2":  Image,
	".cr3":  Image,
	".nef":  Image,
	".nrw":  Image,
	".orf":  Image,
	".rw2":  Image,
	".dng":  Image,
	".raf":  Image,
	".pef":  Image,
	".srw":  Image,
	".x3f":  Image,
	".mrw":  Image,
	".erf":  Image,
	".sr2":  Image,
	".xcf":  Image,
	".pcx":  Image,
	".tga":  Image,
	".exr":  Image,
	".hdr":  Image,
	".jp2":  Image,
	".j2k":  Image,
	".jpx":  Image,
	".pbm":  Image,
	".pgm":  Image,
	".ppm":  Image,
	".pnm":  Image,
	".wbmp": Image,
	".jxl":  Image,
	".qoi":  Image,

	// video
	".mp4":  Video,
	".m4v":  Video,
	".mkv":  Video,
	".webm": Video,
	".avi":  Video,
	".mov":  Video,
	".qt":   Video,
	".wmv":  Video,
	".asf":  Video,
	".flv":  Video,
	".f4v":  Video,
	".mpg":  Video,
	".mpeg": Video,
	".mpe":  Video,
	".m1v":  Video,
	".m2v":  Video,
	".m2ts": Video,
	".mts":  Video,
	".vob":  Video,
	".ogv":  Video,
	".3gp":  Video,
	".3g2":  Video,
	".mxf":  Video,
	".rm":   Video,
	".rmvb": Video,
	".divx": Video,
	".h264": Video,
	".h265": Video,
	".hevc": Video,
	".y4m":  Video,
	".dav":  Video,
	".braw": Video,
	".r3d":  Video,

	// audio
	".mp3":  Audio,
	".wav":  Audio,
	".wave": Audio,
	".flac": Audio,
	".aac":  Audio,
	".m4a":  Audio,
	".m4b":  Audio,
	".ogg":  Audio,
	".oga":  Audio,
	".opus": Audio,
	".wma":  Audio,
	".aiff": Audio,
	".aif":  Audio,
	".aifc": Audio,
	".ape":  Audio,
	".wv":   Audio,
	".mpc":  Audio,
	".amr":  Audio,
	".awb":  Audio,
	".mid":  Audio,
	".midi": Audio,
	".kar":  Audio,
	".rmi":  Audio,
	".mka":  Audio,
	".ra":   Audio,
	".ram":  Audio,
	".au":   Audio,
	".snd":  Audio,
	".gsm":  Audio,
	".m3u":  Audio,
	".m3u8": Audio,
	".pls":  Audio,
	".xspf": Audio,
	".caf":  Audio,
	".ac3":  Audio,
	".dts":  Audio,
	".tta":  Audio,
	".voc":  Audio,

	// document
	".pdf":  Document,
	".doc":  Document,
	".docx": Document,
	".docm": Document,
	".dot":  Document,
	".dotx": Document,
	".dotm": Document,
	".odt":  Document,
	".ott":  Document,
	".rtf":  Document,
	".xls":  Document,
	".xlsx": Document,
	".xlsm": Document,
	".xlsb": Document,
	".xlt":  Document,
	".xltx": Document,
	".xltm": Document,
	".ods":  Document,
	".ots":  Document,
	".ppt":  Document,
	".pptx": Document,
	".pptm": Document,
	".pps":  Document,
	".ppsx": Document,
	".ppsm": Document,
	".pot":  Document,
	".potx": Document,
	".potm": Document,
	".odp":  Document,
	".otp":  Document,
	".odg":  Document,
	".pages": Document,
	".numbers": Document,
	".epub": Document,
	".mobi": Document,
	".azw":  Document,
	".azw3": Document,
	".fb2":  Document,
	".djvu": Document,
	".xps":  Document,
	".oxps": Document,
	".ps":   Document,
	".tex":  Document,
	".ltx":  Document,
	".bib":  Document,
	".wpd":  Document,
	".wps":  Document,
	".abw":  Document,
	".hwp":  Document,

	// executable
	".exe":      Executable,
	".dll":      Executable,
	".sys":      Executable,
	".drv":      Executable,
	".ocx":      Executable,
	".cpl":      Executable,
	".scr":      Executable,
	".com":      Executable,
	".pif":      Executable,
	".msi":      Executable,
	".msp":      Executable,
	".mst":      Executable,
	".msix":     Executable,
	".appx":     Executable,
	".efi":      Executable,
	".elf":      Executable,
	".so":       Executable,
	".dylib":    Executable,
	".bin":      Executable,
	".run":      Executable,
	".out":      Executable,
	".app":      Executable,
	".appimage": Executable,
	".hta":      Executable,
	".msc":      Executable,
	".gadget":   Executable,
	".jse":      Executable,
	".ws":       Executable,
	".vxd":      Executable,
	".air":      Executable,

	// archive
	".zip":  Archive,
	".zipx": Archive,
	".7z":   Archive,
	".rar":  Archive,
	".tar":  Archive,
	".gz":   Archive,
	".tgz":  Archive,
	".bz2":  Archive,
	".tbz":  Archive,
	".tbz2": Archive,
	".xz":   Archive,
	".txz":  Archive,
	".lz":   Archive,
	".lzma": Archive,
	".lz4":  Archive,
	".zst":  Archive,
	".z":    Archive,
	".taz":  Archive,
	".cab":  Archive,
	".arj":  Archive,
	".lzh":  Archive,
	".lha":  Archive,
	".ace":  Archive,
	".arc":  Archive,
	".cpio": Archive,
	".ar":   Archive,
	".iso":  Archive,
	".img":  Archive,
	".dmg":  Archive,
	".vhd":  Archive,
	".vhdx": Archive,
	".vmdk": Archive,
	".wim":  Archive,
	".swm":  Archive,
	".esd":  Archive,
	".jar":  Archive,
	".war":  Archive,
	".ear":  Archive,
	".deb":  Archive,
	".rpm":  Archive,
	".pkg":  Archive,
	".nupkg": Archive,
	".whl":  Archive,
	".egg":  Archive,
	".gem":  Archive,
	".sit":  Archive,
	".sitx": Archive,
	".br":   Archive,

	// mobile
	".apk":             Mobile,
	".aab":             Mobile,
	".xapk":            Mobile,
	".apks":            Mobile,
	".obb":             Mobile,
	".ipa":             Mobile,
	".dex":             Mobile,
	".odex":            Mobile,
	".vdex":            Mobile,
	".smali":           Mobile,
	".aar":             Mobile,
	".ipsw":            Mobile,
	".mobileconfig":    Mobile,
	".mobileprovision": Mobile,

	// email
	".eml":  Email,
	".emlx": Email,
	".msg":  Email,
	".oft":  Email,
	".pst":  Email,
	".ost":  Email,
	".mbox": Email,
	".mbx":  Email,
	".dbx":  Email,
	".nsf":  Email,
	".olm":  Email,
	".vcf":  Email,
	".ics":  Email,

	// web
	".html":        Web,
	".htm":         Web,
	".xhtml":       Web,
	".shtml":       Web,
	".mhtml":       Web,
	".mht":         Web,
	".xml":         Web,
	".xsl":         Web,
	".xslt":        Web,
	".xsd":         Web,
	".dtd":         Web,
	".css":         Web,
	".scss":        Web,
	".sass":        Web,
	".less":        Web,
	".asp":         Web,
	".aspx":        Web,
	".ashx":        Web,
	".asmx":        Web,
	".jsp":         Web,
	".jspx":        Web,
	".cshtml":      Web,
	".vbhtml":      Web,
	".ejs":         Web,
	".hbs":         Web,
	".mustache":    Web,
	".twig":        Web,
	".vue":         Web,
	".svelte":      Web,
	".wasm":        Web,
	".webmanifest": Web,
	".crx":         Web,
	".xpi":         Web,
	".url":         Web,
	".webloc":      Web,
	".swf":         Web,

	// database
	".sql":      Database,
	".db":       Database,
	".db3":      Database,
	".sqlite":   Database,
	".sqlite3":  Database,
	".sqlitedb": Database,
	".sdb":      Database,
	".s3db":     Database,
	".mdb":      Database,
	".accdb":    Database,
	".mde":      Database,
	".accde":    Database,
	".dbf":      Database,
	".mdf":      Database,
	".ndf":      Database,
	".ldf":      Database,
	".frm":      Database,
	".ibd":      Database,
	".myd":      Database,
	".myi":      Database,
	".odb":      Database,
	".fdb":      Database,
	".gdb":      Database,
	".kdb":      Database,
	".kdbx":     Database,
	".realm":    Database,
	".rdb":      Database,
	".aof":      Database,
	".parquet":  Database,
	".avro":     Database,
	".orc":      Database,

	// font
	".ttf":   Font,
	".otf":   Font,
	".ttc":   Font,
	".otc":   Font,
	".woff":  Font,
	".woff2": Font,
	".eot":   Font,
	".pfb":   Font,
	".pfm":   Font,
	".pfa":   Font,
	".afm":   Font,
	".fon":   Font,
	".fnt":   Font,
	".bdf":   Font,
	".pcf":   Font,

	// cad
	".dwg":        CAD,
	".dxf":        CAD,
	".dwf":        CAD,
	".dgn":        CAD,
	".stl":        CAD,
	".obj":        CAD,
	".fbx":        CAD,
	".dae":        CAD,
	".3ds":        CAD,
	".max":        CAD,
	".blend":      CAD,
	".skp":        CAD,
	".step":       CAD,
	".stp":        CAD,
	".iges":       CAD,
	".igs":        CAD,
	".sat":        CAD,
	".x_t":        CAD,
	".x_b":        CAD,
	".sldprt":     CAD,
	".sldasm":     CAD,
	".slddrw":     CAD,
	".catpart":    CAD,
	".catproduct": CAD,
	".ipt":        CAD,
	".iam":        CAD,
	".3mf":        CAD,
	".amf":        CAD,
	".gcode":      CAD,
	".scad":       CAD,
	".glb":        CAD,
	".gltf":       CAD,

	// game
	".unity":        Game,
	".unitypackage": Game,
	".uasset":       Game,
	".umap":         Game,
	".pak":          Game,
	".vpk":          Game,
	".bsp":          Game,
	".wad":          Game,
	".pk3":          Game,
	".pk4":          Game,
	".mpq":          Game,
	".w3x":          Game,
	".rom":          Game,
	".nes":          Game,
	".smc":          Game,
	".sfc":          Game,
	".gba":          Game,
	".gbc":          Game,
	".gb":           Game,
	".nds":          Game,
	".n64":          Game,
	".z64":          Game,
	".v64":          Game,
	".sav":          Game,
	".srm":          Game,
	".gci":          Game,
	".nsp":          Game,
	".xci":          Game,
	".cia":          Game,

	// system
	".reg":      System,
	".pol":      System,
	".admx":     System,
	".adml":     System,
	".inf":      System,
	".cat":      System,
	".mui":      System,
	".mum":      System,
	".manifest": System,
	".lnk":      System,
	".job":      System,
	".pf":       System,
	".hiv":      System,
	".dat":      System,
	".dmp":      System,
	".mdmp":     System,
	".hdmp":     System,
	".evt":      System,
	".evtx":     System,
	".etl":      System,
	".tmp":      System,
	".temp":     System,
	".bak":      System,
	".old":      System,
	".swp":      System,
	".swo":      System,
	".lock":     System,
	".pid":      System,
	".service":  System,
	".timer":    System,
	".target":   System,
	".plist":    System,
	".prefpane": System,
	".kext":     System,
	".ko":       System,
	".o":        System,
	".a":        System,
	".lib":      System,
	".pdb":      System,
	".sym":      System,
	".cer":      System,
	".crt":      System,
	".der":      System,
	".pem":      System,
	".p12":      System,
	".pfx":      System,
	".p7b":      System,
	".csr":      System,
	".key":      System,
	".jks":      System,
	".keystore": System,
	".gpg":      System,
	".pgp":      System,
	".asc":      System,
	".sig":      System,
	".ovpn":     System,
	".rdp":      System,

	// scientific
	".mat":      Scientific,
	".nb":       Scientific,
	".cdf":      Scientific,
	".fits":     Scientific,
	".fts":      Scientific,
	".hdf":      Scientific,
	".hdf5":     Scientific,
	".h5":       Scientific,
	".nc":       Scientific,
	".npy":      Scientific,
	".npz":      Scientific,
	".pkl":      Scientific,
	".pickle":   Scientific,
	".joblib":   Scientific,
	".rds":      Scientific,
	".rdata":    Scientific,
	".rda":      Scientific,
	".rmd":      Scientific,
	".dta":      Scientific,
	".spv":      Scientific,
	".sps":      Scientific,
	".sas7bdat": Scientific,
	".xpt":      Scientific,
	".jmp":      Scientific,
	".ipynb":    Scientific,
	".abf":      Scientific,
	".edf":      Scientific,
	".cel":      Scientific,
	".fastq":    Scientific,
	".fasta":    Scientific,
	".bam":      Scientific,
	".gbk":      Scientific,
	".dcm":      Scientific,
	".nii":      Scientific,

	// blockchain
	".wallet": Blockchain,
	".sol":    Blockchain,
	".vy":     Blockchain,
	".blk":    Blockchain,
	".psbt":   Blockchain,
}
