package flaggedalert

const (
	alertSubject = "TrustPlus: a submission for %s was flagged"

	alertBody = `
	<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
		<h2 style="color: #333;">A submission was flagged</h2>
		<p>Our screening flagged a new submission for <strong>%s</strong>:</p>
		<p style="color: #555;">Reason: %s</p>
		<p style="color: #555;">Confidence: %d%%</p>
		<p>Review it on your TrustPlus dashboard under Flagged Reviews.</p>
	</div>`
)
