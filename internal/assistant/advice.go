package assistant

// PricingTiers 三档定价
type PricingTiers struct {
	Demo     string
	Standard string
	Premium  string
}

// DatasetAdviceProfile 某类数据集的整理与定价建议，运行时只读
type DatasetAdviceProfile struct {
	Label        string
	Emoji        string
	Checklist    []string
	Pricing      PricingTiers
	ValueDrivers string
	Tips         []string
	NextStep     string
}

var adviceProfiles = map[Intent]DatasetAdviceProfile{
	IntentHandwritten: {
		Label: "handwritten",
		Emoji: "✍️",
		Checklist: []string{
			"Scan at 300 DPI or higher with consistent lighting",
			"Pair every image with a verified transcription",
			"Tag writer demographics, language and script style",
			"Remove pages with personal or identifying details",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$25 for a 50-sample preview",
			Standard: "$150–$500 for a few thousand transcribed pages",
			Premium:  "$1,000+ for multi-writer, multi-language sets with line-level boxes",
		},
		ValueDrivers: "OCR and handwriting-recognition teams pay for writer diversity and verified ground truth.",
		Tips: []string{
			"Include a mix of neat and messy handwriting",
			"Document the transcription guidelines you followed",
		},
		NextStep: "Transcribe a 50-page sample and publish it as a demo tier.",
	},
	IntentAudio: {
		Label: "audio",
		Emoji: "🎧",
		Checklist: []string{
			"Normalize sample rate and format (16 kHz WAV is a safe default)",
			"Trim silence and remove clipped or corrupted files",
			"Provide aligned transcripts or event labels",
			"Record speaker metadata like accent, age range and environment",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$30 for 10–20 minutes of audio",
			Standard: "$200–$800 for 10–50 hours with transcripts",
			Premium:  "$2,000+ for 100+ hours with speaker and timestamp alignment",
		},
		ValueDrivers: "Speech and audio-ML teams pay for clean, diverse recordings with accurate alignment.",
		Tips: []string{
			"Report total duration and signal-to-noise ratio up front",
			"Confirm every speaker consented to redistribution",
		},
		NextStep: "Cut a 15-minute sample with transcripts and list it as a demo.",
	},
	IntentVideo: {
		Label: "video",
		Emoji: "🎬",
		Checklist: []string{
			"Standardize resolution, frame rate and codec",
			"Split long footage into labeled clips",
			"Annotate actions, objects or scenes with timestamps",
			"Blur faces and plates unless you hold releases",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$50 for a handful of annotated clips",
			Standard: "$300–$1,500 for hundreds of labeled clips",
			Premium:  "$3,000+ for frame-level annotations across thousands of clips",
		},
		ValueDrivers: "Computer-vision teams pay for temporal labels, since video annotation is slow and expensive.",
		Tips: []string{
			"Ship a thumbnail grid so buyers can preview variety",
			"State total runtime and clip length distribution",
		},
		NextStep: "Annotate 20 representative clips and publish them as a preview.",
	},
	IntentImages: {
		Label: "image",
		Emoji: "🖼️",
		Checklist: []string{
			"Remove duplicates and near-duplicates",
			"Use consistent labels or bounding boxes with a documented schema",
			"Balance classes or report the imbalance clearly",
			"Strip EXIF data that could identify people or locations",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$20 for 100 labeled images",
			Standard: "$100–$600 for 5k–50k labeled images",
			Premium:  "$1,500+ for segmentation masks or expert labels",
		},
		ValueDrivers: "Vision teams pay for label accuracy and coverage of edge cases they can't easily collect.",
		Tips: []string{
			"Include a class distribution chart",
			"Describe how labels were reviewed",
		},
		NextStep: "Run a duplicate check and label a 100-image sample.",
	},
	IntentText: {
		Label: "text",
		Emoji: "📝",
		Checklist: []string{
			"Deduplicate and normalize encoding to UTF-8",
			"Remove personal data like emails and phone numbers",
			"Add labels such as sentiment, intent or topic",
			"Provide train/validation/test splits",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$15 for 1k rows",
			Standard: "$50–$400 for 50k–500k labeled rows",
			Premium:  "$1,000+ for domain-specific, expert-annotated corpora",
		},
		ValueDrivers: "NLP teams pay for domain-specific language and trustworthy labels, not raw volume.",
		Tips: []string{
			"Publish a data card with sources and licensing",
			"Show label agreement scores if you have them",
		},
		NextStep: "Export a 1k-row sample as CSV or JSONL and list it as a demo.",
	},
	IntentSensor: {
		Label: "sensor",
		Emoji: "📡",
		Checklist: []string{
			"Synchronize timestamps across devices",
			"Document units, sampling rates and device models",
			"Flag gaps, dropouts and calibration events",
			"Label activities or anomalies where possible",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$25 for a day of readings",
			Standard: "$200–$900 for weeks of multi-device data",
			Premium:  "$2,500+ for long-horizon, labeled industrial telemetry",
		},
		ValueDrivers: "IoT and predictive-maintenance teams pay for long, labeled time series from real environments.",
		Tips: []string{
			"Include a schema file describing every channel",
			"Plot a sample so buyers can eyeball signal quality",
		},
		NextStep: "Export one device-day with a schema file as your demo tier.",
	},
	IntentFinancial: {
		Label: "financial",
		Emoji: "💹",
		Checklist: []string{
			"Verify you have rights to redistribute the source data",
			"Adjust for splits and corporate actions where relevant",
			"Standardize timezones and trading calendars",
			"Anonymize any account or customer identifiers",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$50 for a month of sample data",
			Standard: "$300–$2,000 for multi-year histories",
			Premium:  "$5,000+ for tick-level or alternative data",
		},
		ValueDrivers: "Quant and fintech teams pay for clean, survivorship-bias-free histories and unique signals.",
		Tips: []string{
			"State the data source and update frequency",
			"Mention any known gaps or restatements",
		},
		NextStep: "Publish one month of cleaned data with a clear license.",
	},
	IntentMedical: {
		Label: "medical",
		Emoji: "🩺",
		Checklist: []string{
			"De-identify according to HIPAA or your local equivalent",
			"Document consent and ethics approval",
			"Have labels reviewed by a qualified clinician",
			"Record device, protocol and demographic metadata",
		},
		Pricing: PricingTiers{
			Demo:     "$0–$100 for a small de-identified sample",
			Standard: "$1,000–$5,000 for curated, labeled studies",
			Premium:  "$10,000+ for expert-annotated, multi-site datasets",
		},
		ValueDrivers: "Healthcare AI teams pay a premium for compliant, clinician-labeled data that is hard to obtain.",
		Tips: []string{
			"Lead with your de-identification method",
			"Be explicit about allowed uses in the license",
		},
		NextStep: "Confirm de-identification on a small sample before listing anything.",
	},
}

// AdviceProfile 返回领域类型对应的建议
func AdviceProfile(d Intent) (DatasetAdviceProfile, bool) {
	p, ok := adviceProfiles[d]
	return p, ok
}
