package catalog

import "vakta/classify"

// Technique references understood by the scan orchestrator.
const (
	TechSignature  TechniqueRef = "signature"
	TechHeuristic  TechniqueRef = "heuristic"
	TechBehavioral TechniqueRef = "behavioral"
	TechEntropy    TechniqueRef = "entropy"
	TechExeHeader  TechniqueRef = "exe_header"
	TechArchive    TechniqueRef = "archive"
	TechContent    TechniqueRef = "content"
)

type engineFlags uint8

const (
	flagNetwork engineFlags = 1 << iota
	flagSandbox
	flagCredential
	flagRetired
)

func vendor(id, name string, cat EngineCategory, cost PerfCost, acc, fp float64, flags engineFlags, types ...classify.Category) Engine {
	e := Engine{
		ID:              id,
		Name:            name,
		Category:        cat,
		Levels:          Levels(),
		Cost:            cost,
		Accuracy:        acc,
		FPRate:          fp,
		Available:       flags&flagRetired == 0,
		NeedsNetwork:    flags&flagNetwork != 0,
		NeedsSandbox:    flags&flagSandbox != 0,
		NeedsCredential: flags&flagCredential != 0,
	}
	if len(types) > 0 {
		e.FileTypes = types
	}
	return e
}

// deep marks an engine as worth running only at elevated scrutiny.
func deep(e Engine) Engine {
	e.Levels = []ThreatLevel{ThreatHigh, ThreatCritical}
	return e
}

func runnable(id, name string, cat EngineCategory, cost PerfCost, acc, fp float64, ref TechniqueRef, types ...classify.Category) Engine {
	e := vendor(id, name, cat, cost, acc, fp, 0, types...)
	e.Technique = ref
	return e
}

func builtinEngines() []Engine {
	return []Engine{
		// Engines backed by the techniques this process actually ships.
		runnable("signature_scan", "Signature Scan", CatSignature, CostLow, 0.99, 0.001, TechSignature),
		runnable("pattern_match", "Pattern Match", CatHeuristic, CostLow, 0.72, 0.08, TechHeuristic),
		runnable("behavior_watch", "Behavior Watch", CatBehavioral, CostMedium, 0.70, 0.10, TechBehavioral),
		runnable("entropy_analysis", "Entropy Analysis", CatStatic, CostLow, 0.55, 0.15, TechEntropy),
		runnable("header_inspection", "Header Inspection", CatStatic, CostLow, 0.65, 0.06, TechExeHeader, classify.Executable, classify.Unknown),
		runnable("archive_deep_scan", "Archive Deep Scan", CatContent, CostMedium, 0.80, 0.04, TechArchive, classify.Archive, classify.Mobile),
		runnable("content_probe", "Content Probe", CatContent, CostLow, 0.50, 0.05, TechContent),

		// Descriptive-only entries. Metadata for the reporting surface;
		// nothing here is executable and Runnable() is false for all of it.
		vendor("hashguard_core", "HashGuard Core", CatSignature, CostLow, 0.99, 0.001, 0),
		vendor("sigmatrix_av", "SigMatrix AV", CatSignature, CostLow, 0.98, 0.002, 0),
		vendor("vaultbyte_engine", "VaultByte Engine", CatSignature, CostLow, 0.97, 0.004, 0),
		vendor("blocklist_prime", "Blocklist Prime", CatSignature, CostLow, 0.96, 0.003, flagNetwork),
		vendor("virusvault_sig", "VirusVault Signature", CatSignature, CostLow, 0.98, 0.002, 0),
		vendor("quickhash_av", "QuickHash AV", CatSignature, CostLow, 0.95, 0.006, 0),
		vendor("sentry_sigdb", "Sentry SigDB", CatSignature, CostLow, 0.97, 0.003, 0),
		vendor("pandion_av", "Pandion AV", CatSignature, CostMedium, 0.99, 0.001, 0),

		vendor("heurex_one", "Heurex One", CatHeuristic, CostLow, 0.74, 0.08, 0),
		vendor("riskweigher", "RiskWeigher", CatHeuristic, CostLow, 0.70, 0.09, 0),
		vendor("anomaly_lens", "Anomaly Lens", CatHeuristic, CostMedium, 0.77, 0.07, 0),
		vendor("scriptsense", "ScriptSense", CatHeuristic, CostLow, 0.72, 0.06, 0, classify.Code, classify.Web),
		vendor("textual_iq", "Textual IQ", CatHeuristic, CostLow, 0.69, 0.10, 0, classify.Text),
		vendor("greyline_heur", "Greyline Heuristics", CatHeuristic, CostMedium, 0.75, 0.08, 0),
		vendor("patternfold", "PatternFold", CatHeuristic, CostLow, 0.71, 0.07, 0),

		vendor("behaviorwatch_x", "BehaviorWatch X", CatBehavioral, CostMedium, 0.78, 0.09, 0),
		vendor("actiontrace", "ActionTrace", CatBehavioral, CostMedium, 0.76, 0.08, 0),
		deep(vendor("runtime_oracle", "Runtime Oracle", CatBehavioral, CostHigh, 0.82, 0.06, flagSandbox)),
		vendor("conductwatch", "ConductWatch", CatBehavioral, CostMedium, 0.74, 0.09, 0),
		vendor("tamper_eye", "TamperEye", CatBehavioral, CostMedium, 0.77, 0.07, 0),
		vendor("persistence_hunter", "Persistence Hunter", CatBehavioral, CostMedium, 0.80, 0.05, 0),
		vendor("exfil_sentinel", "Exfil Sentinel", CatBehavioral, CostMedium, 0.79, 0.06, 0),

		vendor("staticore", "Staticore", CatStatic, CostMedium, 0.81, 0.05, 0),
		vendor("binsight", "BinSight", CatStatic, CostMedium, 0.83, 0.04, 0),
		vendor("structview_av", "StructView AV", CatStatic, CostMedium, 0.79, 0.06, 0),
		vendor("codeatlas_static", "CodeAtlas Static", CatStatic, CostMedium, 0.76, 0.07, 0, classify.Code),
		vendor("peprofiler", "PE Profiler", CatStatic, CostLow, 0.80, 0.05, 0, classify.Executable),
		vendor("elfexaminer", "ELF Examiner", CatStatic, CostLow, 0.78, 0.05, 0, classify.Executable),
		vendor("formatcheck_pro", "FormatCheck Pro", CatStatic, CostLow, 0.73, 0.06, 0),

		deep(vendor("detonation_cell", "Detonation Cell", CatDynamic, CostHigh, 0.92, 0.03, flagSandbox)),
		deep(vendor("sandbox_prime", "Sandbox Prime", CatDynamic, CostHigh, 0.91, 0.03, flagSandbox)),
		deep(vendor("cagefire", "Cagefire", CatDynamic, CostHigh, 0.89, 0.04, flagSandbox)),
		deep(vendor("isolator_dx", "Isolator DX", CatDynamic, CostHigh, 0.90, 0.04, flagSandbox)),
		deep(vendor("runbox_av", "RunBox AV", CatDynamic, CostHigh, 0.88, 0.05, flagSandbox)),
		deep(vendor("tracegrid_dyn", "TraceGrid Dynamic", CatDynamic, CostHigh, 0.87, 0.05, flagSandbox)),
		deep(vendor("virtualpit", "VirtualPit", CatDynamic, CostHigh, 0.86, 0.06, flagSandbox|flagRetired)),

		deep(vendor("neuralscan_ml", "NeuralScan ML", CatAIML, CostHigh, 0.90, 0.06, 0)),
		deep(vendor("deepverdict", "DeepVerdict", CatAIML, CostHigh, 0.91, 0.05, 0)),
		vendor("gradient_guard", "Gradient Guard", CatAIML, CostMedium, 0.86, 0.07, 0),
		deep(vendor("tensor_sentry", "Tensor Sentry", CatAIML, CostHigh, 0.89, 0.06, 0)),
		vendor("featureforge_ai", "FeatureForge AI", CatAIML, CostMedium, 0.84, 0.08, 0),
		vendor("bayesline", "Bayesline", CatAIML, CostLow, 0.79, 0.09, 0),
		vendor("mlp_inspector", "MLP Inspector", CatAIML, CostMedium, 0.83, 0.07, 0),

		vendor("cloudlookup_av", "CloudLookup AV", CatCloud, CostLow, 0.93, 0.02, flagNetwork),
		vendor("reputon_cloud", "Reputon Cloud", CatCloud, CostLow, 0.92, 0.02, flagNetwork|flagCredential),
		vendor("skyquery_av", "SkyQuery AV", CatCloud, CostLow, 0.90, 0.03, flagNetwork),
		deep(vendor("hivemind_intel", "HiveMind Intel", CatCloud, CostMedium, 0.94, 0.02, flagNetwork|flagCredential)),
		vendor("telemetry_net", "TelemetryNet", CatCloud, CostMedium, 0.88, 0.04, flagNetwork),
		vendor("globalsig_cloud", "GlobalSig Cloud", CatCloud, CostLow, 0.95, 0.01, flagNetwork),
		vendor("crowdverdict", "CrowdVerdict", CatCloud, CostLow, 0.89, 0.03, flagNetwork),

		vendor("packer_breaker", "Packer Breaker", CatSpecialized, CostHigh, 0.85, 0.04, 0, classify.Executable),
		vendor("cryptor_lens", "Cryptor Lens", CatSpecialized, CostHigh, 0.83, 0.05, 0, classify.Executable),
		vendor("macro_ripper", "Macro Ripper", CatSpecialized, CostMedium, 0.88, 0.03, 0, classify.Document),
		vendor("shellcode_probe", "Shellcode Probe", CatSpecialized, CostMedium, 0.84, 0.05, 0),
		vendor("rootkit_diver", "Rootkit Diver", CatSpecialized, CostHigh, 0.82, 0.06, 0, classify.System, classify.Executable),
		vendor("bootsector_av", "BootSector AV", CatSpecialized, CostMedium, 0.80, 0.04, flagRetired),
		vendor("usb_autorun_check", "USB Autorun Check", CatSpecialized, CostLow, 0.75, 0.05, 0, classify.System),

		vendor("metaprobe", "MetaProbe", CatMetadata, CostLow, 0.70, 0.04, 0),
		vendor("exif_auditor", "EXIF Auditor", CatMetadata, CostLow, 0.72, 0.03, 0, classify.Image),
		vendor("docprops_check", "DocProps Check", CatMetadata, CostLow, 0.71, 0.04, 0, classify.Document),
		vendor("timestamp_sanity", "Timestamp Sanity", CatMetadata, CostLow, 0.66, 0.05, 0),
		vendor("origin_tracer", "Origin Tracer", CatMetadata, CostMedium, 0.74, 0.05, 0),
		vendor("authorship_check", "Authorship Check", CatMetadata, CostLow, 0.68, 0.06, 0),
		vendor("final_verification", "Final Verification", CatMetadata, CostLow, 0.90, 0.01, 0),

		vendor("content_sieve", "Content Sieve", CatContent, CostLow, 0.73, 0.06, 0),
		vendor("textminer_av", "TextMiner AV", CatContent, CostLow, 0.71, 0.07, 0, classify.Text, classify.Code, classify.Web),
		vendor("mediacheck", "MediaCheck", CatContent, CostLow, 0.69, 0.05, 0, classify.Image, classify.Video, classify.Audio),
		vendor("docstream_scan", "DocStream Scan", CatContent, CostMedium, 0.76, 0.05, 0, classify.Document),
		vendor("payload_strings", "Payload Strings", CatContent, CostLow, 0.74, 0.06, 0),
		deep(vendor("deepcontent_dx", "DeepContent DX", CatContent, CostHigh, 0.81, 0.05, 0)),
		vendor("markup_inspector", "Markup Inspector", CatContent, CostLow, 0.70, 0.06, 0, classify.Web, classify.Text),

		vendor("netflow_sense", "NetFlow Sense", CatNetwork, CostMedium, 0.80, 0.06, flagNetwork),
		vendor("dns_reputation", "DNS Reputation", CatNetwork, CostLow, 0.85, 0.03, flagNetwork),
		vendor("url_classifier", "URL Classifier", CatNetwork, CostLow, 0.84, 0.04, flagNetwork),
		vendor("c2_beacon_finder", "C2 Beacon Finder", CatNetwork, CostMedium, 0.86, 0.04, flagNetwork),
		vendor("tls_fingerprint", "TLS Fingerprint", CatNetwork, CostMedium, 0.82, 0.05, flagNetwork),
		vendor("proxy_detector", "Proxy Detector", CatNetwork, CostLow, 0.77, 0.06, flagNetwork),
		deep(vendor("lateral_watch", "Lateral Watch", CatNetwork, CostHigh, 0.81, 0.06, flagNetwork)),

		vendor("apk_insight", "APK Insight", CatMobile, CostMedium, 0.87, 0.04, 0, classify.Mobile),
		vendor("dex_auditor", "DEX Auditor", CatMobile, CostMedium, 0.85, 0.05, 0, classify.Mobile),
		vendor("mobileperm_check", "MobilePerm Check", CatMobile, CostLow, 0.78, 0.06, 0, classify.Mobile),
		vendor("ipa_scanner", "IPA Scanner", CatMobile, CostMedium, 0.83, 0.05, 0, classify.Mobile),
		deep(vendor("droidbehavior", "DroidBehavior", CatMobile, CostHigh, 0.84, 0.06, flagSandbox, classify.Mobile)),
		vendor("appstore_reputation", "AppStore Reputation", CatMobile, CostLow, 0.88, 0.03, flagNetwork|flagCredential, classify.Mobile),
		vendor("mobile_packer_check", "Mobile Packer Check", CatMobile, CostMedium, 0.80, 0.05, 0, classify.Mobile),

		vendor("phish_lens", "PhishLens", CatEmail, CostLow, 0.89, 0.04, 0, classify.Email),
		vendor("header_forensics", "Header Forensics", CatEmail, CostLow, 0.82, 0.05, 0, classify.Email),
		vendor("attachment_xray", "Attachment X-Ray", CatEmail, CostMedium, 0.86, 0.04, 0, classify.Email, classify.Document),
		vendor("spf_dkim_check", "SPF/DKIM Check", CatEmail, CostLow, 0.80, 0.03, flagNetwork, classify.Email),
		vendor("spamtrap_intel", "SpamTrap Intel", CatEmail, CostLow, 0.84, 0.05, flagNetwork, classify.Email),
		vendor("mailbody_scan", "MailBody Scan", CatEmail, CostLow, 0.78, 0.06, 0, classify.Email),
		deep(vendor("link_detonator", "Link Detonator", CatEmail, CostHigh, 0.87, 0.04, flagNetwork|flagSandbox, classify.Email)),

		vendor("webshell_hunter", "Webshell Hunter", CatWeb, CostMedium, 0.90, 0.03, 0, classify.Web, classify.Code),
		deep(vendor("js_deobfuscator", "JS Deobfuscator", CatWeb, CostHigh, 0.85, 0.05, 0, classify.Web, classify.Code)),
		vendor("iframe_inspector", "IFrame Inspector", CatWeb, CostLow, 0.79, 0.06, 0, classify.Web),
		vendor("cryptojack_finder", "Cryptojack Finder", CatWeb, CostMedium, 0.86, 0.04, 0, classify.Web, classify.Code),
		vendor("seo_spam_check", "SEO Spam Check", CatWeb, CostLow, 0.72, 0.08, flagRetired, classify.Web),
		vendor("html_smuggle_detect", "HTML Smuggle Detect", CatWeb, CostMedium, 0.84, 0.05, 0, classify.Web),
		vendor("cms_exploit_check", "CMS Exploit Check", CatWeb, CostMedium, 0.81, 0.06, 0, classify.Web, classify.Code),

		deep(vendor("firmware_xray", "Firmware X-Ray", CatIoT, CostHigh, 0.83, 0.05, 0, classify.Executable, classify.System)),
		vendor("busybox_audit", "BusyBox Audit", CatIoT, CostMedium, 0.77, 0.06, 0, classify.Executable),
		vendor("telnet_cred_check", "Telnet Cred Check", CatIoT, CostLow, 0.74, 0.05, flagNetwork|flagCredential),
		vendor("upnp_probe", "UPnP Probe", CatIoT, CostLow, 0.70, 0.07, flagNetwork),
		vendor("mirai_sig_check", "Mirai Sig Check", CatIoT, CostLow, 0.88, 0.02, 0, classify.Executable),
		vendor("embedded_elf_scan", "Embedded ELF Scan", CatIoT, CostMedium, 0.80, 0.05, 0, classify.Executable),
		vendor("mqtt_inspector", "MQTT Inspector", CatIoT, CostMedium, 0.75, 0.06, flagNetwork),
	}
}

func selectionRules() map[classify.Category]SelectionRule {
	return map[classify.Category]SelectionRule{
		classify.Text: {
			IDs: []string{"signature_scan", "pattern_match", "entropy_analysis", "content_probe",
				"textminer_av", "content_sieve", "textual_iq", "payload_strings"},
			Count: 8, Priority: "content_heuristics",
		},
		classify.Code: {
			IDs: []string{"signature_scan", "pattern_match", "behavior_watch", "scriptsense",
				"webshell_hunter", "codeatlas_static", "js_deobfuscator", "neuralscan_ml"},
			Count: 8, Priority: "script_analysis",
		},
		classify.Image: {
			IDs: []string{"signature_scan", "entropy_analysis", "exif_auditor", "mediacheck",
				"metaprobe", "content_probe"},
			Count: 6, Priority: "metadata_integrity",
		},
		classify.Video: {
			IDs:   []string{"signature_scan", "entropy_analysis", "mediacheck", "content_probe", "formatcheck_pro"},
			Count: 5, Priority: "container_sanity",
		},
		classify.Audio: {
			IDs:   []string{"signature_scan", "entropy_analysis", "mediacheck", "content_probe", "formatcheck_pro"},
			Count: 5, Priority: "container_sanity",
		},
		classify.Document: {
			IDs: []string{"signature_scan", "macro_ripper", "docprops_check", "docstream_scan",
				"pattern_match", "content_probe", "attachment_xray", "detonation_cell"},
			Count: 8, Priority: "macro_security",
		},
		classify.Executable: {
			IDs: []string{"signature_scan", "header_inspection", "entropy_analysis", "behavior_watch",
				"peprofiler", "packer_breaker", "staticore", "binsight", "shellcode_probe",
				"neuralscan_ml", "detonation_cell", "cloudlookup_av"},
			Count: 12, Priority: "binary_deep_scan",
		},
		classify.Archive: {
			IDs: []string{"signature_scan", "archive_deep_scan", "entropy_analysis", "formatcheck_pro",
				"content_sieve", "deepcontent_dx"},
			Count: 6, Priority: "nested_containment",
		},
		classify.Mobile: {
			IDs: []string{"signature_scan", "archive_deep_scan", "apk_insight", "dex_auditor",
				"mobileperm_check", "mobile_packer_check", "droidbehavior", "appstore_reputation"},
			Count: 8, Priority: "app_vetting",
		},
		classify.Email: {
			IDs: []string{"signature_scan", "pattern_match", "phish_lens", "header_forensics",
				"mailbody_scan", "attachment_xray", "spf_dkim_check", "link_detonator"},
			Count: 8, Priority: "phishing_defense",
		},
		classify.Web: {
			IDs: []string{"signature_scan", "pattern_match", "webshell_hunter", "iframe_inspector",
				"markup_inspector", "cryptojack_finder", "html_smuggle_detect", "js_deobfuscator"},
			Count: 8, Priority: "webshell_detection",
		},
		classify.Database: {
			IDs:   []string{"signature_scan", "entropy_analysis", "content_sieve", "payload_strings", "formatcheck_pro"},
			Count: 5, Priority: "bulk_content",
		},
		classify.Font: {
			IDs:   []string{"signature_scan", "entropy_analysis", "formatcheck_pro", "structview_av"},
			Count: 4, Priority: "parser_safety",
		},
		classify.CAD: {
			IDs:   []string{"signature_scan", "entropy_analysis", "formatcheck_pro", "content_probe"},
			Count: 4, Priority: "format_integrity",
		},
		classify.Game: {
			IDs:   []string{"signature_scan", "entropy_analysis", "content_probe", "payload_strings"},
			Count: 4, Priority: "asset_integrity",
		},
		classify.System: {
			IDs: []string{"signature_scan", "pattern_match", "behavior_watch", "persistence_hunter",
				"tamper_eye", "rootkit_diver", "usb_autorun_check"},
			Count: 7, Priority: "persistence_audit",
		},
		classify.Scientific: {
			IDs:   []string{"signature_scan", "entropy_analysis", "content_probe", "formatcheck_pro"},
			Count: 4, Priority: "data_integrity",
		},
		classify.Blockchain: {
			IDs: []string{"signature_scan", "pattern_match", "cryptojack_finder", "content_sieve",
				"exfil_sentinel"},
			Count: 5, Priority: "wallet_security",
		},
		classify.Unknown: {
			IDs: []string{"signature_scan", "pattern_match", "entropy_analysis", "header_inspection",
				"behavior_watch", "content_probe", "bayesline"},
			Count: 7, Priority: "broad_coverage",
		},
	}
}
