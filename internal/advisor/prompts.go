package advisor

import (
	"fmt"
	"strings"

	"easywealth/internal/risk"
)

// AssessmentInstruction seeds every risk chat
const AssessmentInstruction = `You are the EasyWealth Financial Psychologist. Your goal is to determine a user's financial risk tolerance (Low, Moderate, or Aggressive) through a natural, empathetic conversation.
Do not ask for a list of numbers. Ask behavioral questions like "How would you feel if your portfolio dropped 20% overnight?" or "Do you prefer stability over high growth?".
Keep responses concise (under 50 words). Be encouraging.
At the end of the conversation, if you have determined the risk profile, explicitly state: "Based on our chat, your risk profile is [RISK_LEVEL]."`

const (
	FallbackConnect     = "I'm having trouble connecting to the server. Please check your API Key."
	FallbackEmptyReply  = "I'm having trouble thinking right now."
	FallbackUnavailable = "AI Service Unavailable. Please check API Key."
	FallbackAdviceError = "An error occurred while generating your investment plan."
	FallbackEmptyAdvice = "Could not generate advice."
)

// tierLabel is how a tier is named to the model
func tierLabel(t risk.Tier) string {
	switch t {
	case risk.Conservative:
		return "Conservative (Low Risk)"
	case risk.Balanced:
		return "Balanced (Moderate Risk)"
	case risk.Aggressive:
		return "Aggressive (High Risk)"
	}
	return "Unknown"
}

// AdvicePrompt renders the wealth-manager prompt for req
func AdvicePrompt(req AdviceRequest) string {
	var b strings.Builder
	b.WriteString("Act as a senior wealth manager for EasyWealth.\n")
	fmt.Fprintf(&b, "User Risk Profile: %s\n", tierLabel(req.Tier))
	fmt.Fprintf(&b, "Current Savings/Portfolio: %s\n", strings.TrimSpace(req.Savings))
	fmt.Fprintf(&b, "Financial Goals: %s\n\n", strings.TrimSpace(req.Goals))
	b.WriteString("Provide a concise, actionable investment plan.\n")
	b.WriteString("Include specific asset allocation percentages (e.g., Equity, Debt, Gold).\n")
	b.WriteString(`Suggest 2-3 specific types of instruments (e.g., "Index Funds", "Sovereign Gold Bonds") relevant to the Indian market context if applicable, or general global context otherwise.` + "\n")
	b.WriteString("Keep it under 200 words. Format with bullet points.\n")
	return b.String()
}
