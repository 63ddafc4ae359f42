package chatbot

type TemplateKey string

const (
	TemplatePackages TemplateKey = "packages"
	TemplateScoring  TemplateKey = "scoring"
	TemplateDemo     TemplateKey = "demo"
	TemplatePricing  TemplateKey = "pricing"
	TemplateLead     TemplateKey = "lead"
	TemplateDefault  TemplateKey = "default"
)

const Greeting = "👋 Hi! I'm NexVstar's AI assistant. How can I help you boost your revenue today?"

// QuickReplies are the canned prompts shown under the chat input.
var QuickReplies = []string{
	"What packages do you offer?",
	"How does AI scoring work?",
	"Book a demo",
	"What's the pricing?",
	"How does lead capture work?",
}

var templates = map[TemplateKey]string{
	TemplatePackages: "We offer 3 packages:\n\n**Starter** - ₹30k setup + ₹50k/month\nIdeal for small businesses with up to 5 users\n\n**Growth** - ₹50k setup + ₹1L/month\nFor mid-size companies with CRM integration\n\n**Enterprise** - Custom ₹3L–₹10L/month\nFull AI suite with dedicated manager\n\nWould you like more details on any package?",
	TemplateScoring:  "Our AI Lead Scoring engine analyzes:\n\n• Engagement patterns & website behavior\n• Industry trends & company size\n• Past interaction history\n• Communication responsiveness\n\nEach lead gets a 0-100% conversion probability score, updated in real-time. Sales teams can prioritize leads with >70% scores for fastest conversion.\n\nWant to see a live demo?",
	TemplateDemo:     "Great choice! You can book a free demo in 3 ways:\n\n1. **Fill our form** → nexvstar.ai/demo\n2. **Call us** → +91 98765 43210\n3. **Email** → hello@nexvstar.ai\n\nOur team typically responds within 2 business hours. Demos run 30-45 minutes and include a live walkthrough of your potential ROI.",
	TemplatePricing:  "Our pricing is structured as:\n\n**Starter:** ₹30k (setup) + ₹50k/month\n**Growth:** ₹50k (setup) + ₹1L/month\n**Enterprise:** Custom ₹3L-₹10L/month\n\n**Add-ons:**\n• Extra dashboards: ₹10k-₹50k\n• AI optimization: ₹20k/month\n• Retainer support: ₹10k-₹20k/month\n\nAnnual plans get 20% discount! Shall I connect you with our sales team?",
	TemplateLead:     "Our AI Lead Capture system:\n\n✅ Collects leads from website forms automatically\n✅ Pulls prospects from LinkedIn Sales Navigator\n✅ Processes email inbox leads via AI parsing\n✅ Categorizes by company size, industry & intent\n✅ Scores and assigns to sales reps instantly\n\nAll leads appear on your dashboard in real-time with full context. Want to schedule a personalized walkthrough?",
	TemplateDefault:  "Hi! I'm NexVstar's AI assistant 🤖\n\nI can help you with:\n• Package & pricing information\n• How AI scoring works\n• Booking a demo\n• Lead capture & automation\n• Revenue forecasting insights\n\nWhat would you like to know?",
}

// Template returns the reply text for key, falling back to the default template.
func Template(key TemplateKey) string {
	if t, ok := templates[key]; ok {
		return t
	}
	return templates[TemplateDefault]
}
