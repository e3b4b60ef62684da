package patterns

// Suspicious-string indicators. Aimed at droppers, download cradles and
// obfuscated script payloads; heavily biased toward constructs that normal
// source code never contains.
func suspiciousPatterns() []Pattern {
	return []Pattern{
		newPattern("eval_decode",
			`eval\s*\(\s*(base64_decode|gzinflate|str_rot13|gzuncompress|gzdecode)\s*\(`,
			"eval"),
		newPattern("powershell_encoded",
			`powershell(\.exe)?[^\n]{0,80}(-enc|-encodedcommand)\s+[a-z0-9+/=]{16,}`,
			"powershell"),
		newPattern("download_exec",
			`(curl|wget)\s+[^|\n]{1,200}\|\s*(sudo\s+)?(ba|z)?sh`,
			"curl", "wget"),
		newPattern("iex_cradle",
			`(iex|invoke-expression)\s*[\(\s][^\n]{0,80}(net\.webclient|invoke-webrequest|downloadstring)`,
			"iex", "invoke-expression"),
		newPattern("dev_tcp_shell",
			`bash\s+-i\s+>&?\s*/dev/tcp/[0-9a-z._-]+/\d+`,
			"/dev/tcp"),
		newPattern("netcat_shell",
			`\bnc(at)?\b[^\n]{0,120}\s(-e|-c)\s+(/bin/(ba)?sh|cmd(\.exe)?)`,
			"nc"),
		newPattern("cmd_spawn",
			`cmd(\.exe)?\s*/c\s+`,
			"cmd"),
		newPattern("script_host_shell",
			`createobject\(\s*"wscript\.shell"\s*\)`,
			"wscript"),
		newPattern("certutil_fetch",
			`certutil\s+[^\n]{0,120}(-urlcache|-decode|-decodehex)`,
			"certutil"),
		newPattern("mshta_remote",
			`mshta\s+[^\n]{0,120}(https?://|javascript:|vbscript:)`,
			"mshta"),
		newPattern("rundll32_abuse",
			`rundll32\s+[^\n]{0,120}(javascript:|shellexec|\.dll\s*,)`,
			"rundll32"),
		newPattern("hidden_window",
			`-windowstyle\s+hidden`,
			"windowstyle"),
		newPattern("charcode_obfuscation",
			`(string\.fromcharcode|(chr\s*\(\s*\d+\s*\)\s*[+&.]\s*){3,})`,
			"fromcharcode", "chr"),
		newPattern("eval_obfuscated",
			`\beval\s*\(\s*(atob|unescape|decodeuricomponent|string\.fromcharcode)\s*\(`,
			"eval"),
		newPattern("malware_noun",
			`\b(keylogger|backdoor|rootkit|botnet|ransomware|spyware|trojan)\b`,
			"keylogger", "backdoor", "rootkit", "botnet", "ransomware", "spyware", "trojan"),
		newPattern("injection_noun",
			`\b(shellcode|process\s+hollowing|dll\s+injection|code\s+injection)\b`,
			"shellcode", "hollowing", "injection"),
		newPattern("bitsadmin_transfer",
			`bitsadmin\s+[^\n]{0,120}/transfer`,
			"bitsadmin"),
		newPattern("defender_disable",
			`set-mppreference\s+[^\n]{0,120}-disable`,
			"mppreference"),
	}
}

// Crypto and wallet indicators. Addresses are matched loosely on purpose;
// the heuristic weighs them, it does not validate them.
func cryptoPatterns() []Pattern {
	return []Pattern{
		newPattern("wallet_file", `wallet\.dat`, "wallet.dat"),
		newPattern("btc_address", `\b(bc1[a-z0-9]{25,62}|[13][a-km-z1-9]{25,34})\b`),
		newPattern("eth_address", `\b0x[a-f0-9]{40}\b`, "0x"),
		newPattern("xmr_address", `\b4[0-9ab][a-z0-9]{93}\b`),
		newPattern("seed_phrase",
			`\b(seed\s+phrase|recovery\s+phrase|mnemonic)\b`,
			"seed", "recovery", "mnemonic"),
		newPattern("private_key", `\bprivate\s+key\b`, "private"),
		newPattern("extended_key", `\bxprv[a-z0-9]{20,}`, "xprv"),
		newPattern("wallet_app",
			`\b(metamask|electrum|exodus|trezor|ledger\s+live|coinomi)\b`,
			"metamask", "electrum", "exodus", "trezor", "ledger", "coinomi"),
		newPattern("exchange_key",
			`\b(binance|coinbase|kraken)\b[^\n]{0,60}(api[_\s-]?key|secret)`,
			"binance", "coinbase", "kraken"),
		newPattern("keystore_file",
			`(keystore\.json|utc--\d{4}-\d{2}-\d{2})`,
			"keystore", "utc--"),
		newPattern("stratum_pool", `stratum\+tcp://`, "stratum"),
		newPattern("wallet_dump",
			`wallet[_\s-]?(backup|dump|export|seed)`,
			"wallet"),
	}
}

// Behavioral patterns, grouped into the four behavior categories. Larger
// and noisier than the suspicious set; callers route it only to file
// categories where textual behavior indicators are meaningful.
func behavioralPatterns() []Pattern {
	return []Pattern{
		// filesystem tampering
		newBehavior(CategoryFilesystemTampering, "recursive_delete",
			`rm\s+-[a-z]*r[a-z]*\s+(/|~|\$home)`, "rm -"),
		newBehavior(CategoryFilesystemTampering, "mass_delete",
			`del\s+/[fsq]\s+[^\n]{0,40}\*`, "del /"),
		newBehavior(CategoryFilesystemTampering, "format_drive",
			`format\s+[a-z]:\s*/[qy]`, "format"),
		newBehavior(CategoryFilesystemTampering, "shadow_copy_delete",
			`vssadmin\s+delete\s+shadows`, "vssadmin"),
		newBehavior(CategoryFilesystemTampering, "backup_catalog_delete",
			`wbadmin\s+delete\s+catalog`, "wbadmin"),
		newBehavior(CategoryFilesystemTampering, "recovery_disable",
			`bcdedit\s+[^\n]{0,60}recoveryenabled\s+no`, "bcdedit"),
		newBehavior(CategoryFilesystemTampering, "free_space_wipe",
			`cipher\s+/w`, "cipher"),
		newBehavior(CategoryFilesystemTampering, "tree_removal",
			`shutil\.rmtree|os\.removedirs`, "rmtree", "removedirs"),
		newBehavior(CategoryFilesystemTampering, "bulk_encrypt",
			`(openssl\s+enc|aes-?256)[^\n]{0,120}(\*\.|\.jpg|\.docx?|\.pdf)`,
			"openssl", "aes"),
		newBehavior(CategoryFilesystemTampering, "hide_attrib",
			`attrib\s+[^\n]{0,20}\+[hs]`, "attrib"),

		// registry / persistence tampering
		newBehavior(CategoryRegistryPersistence, "run_key_add",
			`reg\s+add\s+[^\n]{0,120}currentversion\\+run`, "reg add"),
		newBehavior(CategoryRegistryPersistence, "run_key_api",
			`reg(setvalueex|createkeyex)`, "regsetvalueex", "regcreatekeyex"),
		newBehavior(CategoryRegistryPersistence, "run_key_path",
			`hk(lm|cu)\\+[^\n]{0,80}currentversion\\+run`, "currentversion"),
		newBehavior(CategoryRegistryPersistence, "scheduled_task",
			`schtasks\s+/create`, "schtasks"),
		newBehavior(CategoryRegistryPersistence, "service_install",
			`sc\s+(create|config)\s+[^\n]{0,80}binpath`, "binpath"),
		newBehavior(CategoryRegistryPersistence, "ps_run_key",
			`new-itemproperty\s+[^\n]{0,120}\\run`, "new-itemproperty"),
		newBehavior(CategoryRegistryPersistence, "startup_folder",
			`start\s+menu\\+programs\\+startup`, "startup"),
		newBehavior(CategoryRegistryPersistence, "cron_write",
			`(echo|printf|cat|tee)\s+[^\n]{0,120}>>?\s*/etc/cron`, "cron"),
		newBehavior(CategoryRegistryPersistence, "systemd_unit_drop",
			`>\s*/etc/systemd/system/[^\n]{1,80}\.service`, "systemd"),
		newBehavior(CategoryRegistryPersistence, "launch_agent",
			`library/launchagents/[^\n]{1,80}\.plist`, "launchagents"),
		newBehavior(CategoryRegistryPersistence, "ssh_key_implant",
			`>>\s*[^\n]{0,80}\.ssh/authorized_keys`, "authorized_keys"),
		newBehavior(CategoryRegistryPersistence, "preload_hijack",
			`ld_preload\s*=\s*[^\s;]{1,120}\.so`, "ld_preload"),

		// network / exfiltration
		newBehavior(CategoryNetworkExfiltration, "dev_tcp_redirect",
			`(bash|sh)\s+-i\s+>&?\s*/dev/tcp/`, "/dev/tcp"),
		newBehavior(CategoryNetworkExfiltration, "netcat_exec",
			`\bnc(at)?\b[^\n]{0,80}(-e|-c)\s*(/bin/|cmd)`, "nc"),
		newBehavior(CategoryNetworkExfiltration, "url_download_api",
			`urldownloadtofile`, "urldownloadtofile"),
		newBehavior(CategoryNetworkExfiltration, "ps_outfile",
			`invoke-webrequest\s+[^\n]{0,120}-outfile`, "invoke-webrequest"),
		newBehavior(CategoryNetworkExfiltration, "scripted_ftp",
			`ftp\s+-s:`, "ftp -s"),
		newBehavior(CategoryNetworkExfiltration, "discord_webhook",
			`discord(app)?\.com/api/webhooks/`, "webhooks"),
		newBehavior(CategoryNetworkExfiltration, "telegram_bot",
			`api\.telegram\.org/bot`, "telegram"),
		newBehavior(CategoryNetworkExfiltration, "paste_exfil",
			`pastebin\.com/(raw|api)`, "pastebin"),
		newBehavior(CategoryNetworkExfiltration, "dns_exfil",
			`(nslookup|dig)\s+[^\s;|&]{0,60}\$`, "nslookup", "dig"),
		newBehavior(CategoryNetworkExfiltration, "socket_shell",
			`(socket\.socket|net\.dial|socket\.connect)[\s\S]{0,300}(subprocess|exec\.command|os\.system|/bin/sh)`,
			"socket", "dial"),
		newBehavior(CategoryNetworkExfiltration, "mail_exfil",
			`(smtplib\.smtp|send-mailmessage)[\s\S]{0,200}(attach|\.send)`,
			"smtp", "mailmessage"),

		// crypto theft
		newBehavior(CategoryCryptoTheft, "clipboard_swap",
			`(getclipboarddata|setclipboarddata|pyperclip|clipboard)[\s\S]{0,200}(bc1[a-z0-9]{10,}|0x[a-f0-9]{40}|wallet)`,
			"clipboard", "pyperclip"),
		newBehavior(CategoryCryptoTheft, "wallet_grab",
			`(copy|xcopy|type|cat|open|read)[^\n]{0,80}wallet\.dat`, "wallet.dat"),
		newBehavior(CategoryCryptoTheft, "metamask_extension",
			`nkbihfbeogaeaoehlefnkodbefgpgknn`, "nkbihfbeogaeaoehlefnkodbefgpgknn"),
		newBehavior(CategoryCryptoTheft, "wallet_dir_sweep",
			`(appdata|roaming|\.config)[^\n]{0,80}(metamask|electrum|exodus|ethereum[\\/]keystore)`,
			"metamask", "electrum", "exodus", "keystore"),
		newBehavior(CategoryCryptoTheft, "seed_prompt",
			`enter\s+your\s+(12|24)[\s-]?word`, "enter your"),
		newBehavior(CategoryCryptoTheft, "keystore_exfil",
			`keystore[^\n]{0,80}(upload|post|send|copy)`, "keystore"),
		newBehavior(CategoryCryptoTheft, "miner_payload",
			`\b(xmrig|minerd|cryptonight|cgminer)\b`,
			"xmrig", "minerd", "cryptonight", "cgminer"),
		newBehavior(CategoryCryptoTheft, "wallet_exfil",
			`(curl|wget|invoke-webrequest)[^\n]{0,120}wallet`, "wallet"),
	}
}
