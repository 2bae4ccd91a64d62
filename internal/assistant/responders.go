package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/internal/services"
)

// ResponderInput carries everything a heuristic responder may use: the
// turn entities, the merged session slots, fetched external data, and
// the normalized trip intent when one was built this turn.
type ResponderInput struct {
	Entities   models.EntitySet
	Slots      models.EntitySet
	External   *services.External
	TripIntent *models.TripIntent
}

func (in ResponderInput) destination() string {
	if in.Entities.Destination != "" {
		return in.Entities.Destination
	}
	if in.Slots.Destination != "" {
		return in.Slots.Destination
	}
	return "your destination"
}

func (in ResponderInput) countryName() string {
	if in.External != nil && in.External.Country != nil {
		return in.External.Country.Name
	}
	return ""
}

func placeLabel(destination, country string) string {
	if country != "" && !strings.EqualFold(destination, country) {
		return destination + ", " + country
	}
	return destination
}

// HeuristicResponse answers an intent from rules and fetched data
// alone. It is the fallback when the LLM is unavailable, and the only
// path for the intents with curated playbooks (best time, budget,
// safety, visa, itinerary).
func HeuristicResponse(intent models.Intent, in ResponderInput) string {
	switch intent {
	case models.IntentAccommodation:
		return accommodationResponse(in)
	case models.IntentAttractions:
		return attractionsResponse(in)
	case models.IntentPacking:
		return packingResponse(in)
	case models.IntentDestination:
		return destinationResponse()
	case models.IntentWeather:
		return weatherResponse(in)
	case models.IntentBestTime:
		return bestTimeResponse(in)
	case models.IntentBudget:
		return budgetResponse(in)
	case models.IntentSafety:
		return safetyResponse(in)
	case models.IntentItinerary:
		return itineraryResponse(in)
	case models.IntentVisa:
		return visaResponse(in)
	default:
		return "Happy to help! Tell me if you want destinations, things to do, packing, or places to stay."
	}
}

func accommodationResponse(in ResponderInput) string {
	place := placeLabel(in.destination(), in.countryName())
	typeNote := ""
	if in.Entities.AccommodationType != "" {
		typeNote = " (" + in.Entities.AccommodationType + ")"
	}

	var hotels []services.Hotel
	if in.External != nil {
		hotels = in.External.Hotels
	}
	if len(hotels) == 0 {
		return "**Accommodation in " + place + typeNote + ":**\n\n" +
			"I can tailor recommendations — quick questions:\n" +
			"• Budget range (per night)?\n" +
			"• Preferred type (hotel, apartment, hostel, boutique)?\n" +
			"• Travel dates and neighborhood vibe (central/nightlife/quiet)?"
	}

	if len(hotels) > 5 {
		hotels = hotels[:5]
	}
	lines := make([]string, 0, len(hotels))
	for _, h := range hotels {
		kind := h.Type
		if kind == "" {
			kind = "hotel"
		}
		var extras []string
		if h.Rating != nil {
			extras = append(extras, fmt.Sprintf("%g/5", *h.Rating))
		}
		if h.DistanceKM != nil {
			extras = append(extras, fmt.Sprintf("%.1f km from center", *h.DistanceKM))
		}
		extra := ""
		if len(extras) > 0 {
			extra = " — " + strings.Join(extras, ", ")
		}
		lines = append(lines, "• "+h.Name+" ("+kind+")"+extra)
	}

	return "**Where to Stay in " + place + typeNote + ":**\n\n" +
		"**Options**\n" + strings.Join(lines, "\n") + "\n\n" +
		"**Booking Tips**\n" +
		"• Book early for peak seasons.\n" +
		"• Compare reviews across platforms.\n" +
		"• Pick walkable areas near your top sights or reliable transit."
}

func attractionsResponse(in ResponderInput) string {
	place := placeLabel(in.destination(), in.countryName())
	return "**Top Attractions in " + place + ":**\n\n" +
		"**Cultural & Historical Sites**\n" +
		"• Main museums and historical landmarks\n" +
		"• Important religious or government buildings\n" +
		"• Local architectural highlights\n\n" +
		"**Neighborhoods & Local Life**\n" +
		"• Popular shopping and dining areas\n" +
		"• Scenic viewpoints and parks\n" +
		"• Cultural districts and markets\n\n" +
		"**Activities & Entertainment**\n" +
		"• Local festivals and events\n" +
		"• Outdoor activities and nature spots\n" +
		"• Evening entertainment options\n\n" +
		"**Tips:** Check opening hours, consider transit passes, try regional cuisine!"
}

func packingResponse(in ResponderInput) string {
	place := placeLabel(in.destination(), in.countryName())
	return "**Packing List for " + place + ":**\n\n" +
		"Clothing\n" +
		"• Weather-appropriate layers\n" +
		"• Comfortable walking shoes\n" +
		"• Light rain protection\n\n" +
		"Essentials\n" +
		"• Power adapter, power bank\n" +
		"• Copies of documents, insurance\n\n" +
		"Day Gear\n" +
		"• Small backpack\n" +
		"• Water bottle, sun protection"
}

func destinationResponse() string {
	return "**Destination Ideas (by vibe):**\n" +
		"• Beach & Relaxation: Greek Islands, Thailand, Bali\n" +
		"• City & Culture: Tokyo, Rome, NYC\n" +
		"• Nature & Adventure: Swiss Alps, Costa Rica, New Zealand\n\n" +
		"What vibe are you after and when?"
}

func weatherResponse(in ResponderInput) string {
	dest := in.destination()
	if dest == "your destination" {
		return "Could you tell me the destination? I'll check the weather forecast for you."
	}
	place := placeLabel(dest, in.countryName())
	climate := ""
	if in.External != nil {
		climate = in.External.ClimateInfo
	}
	if climate == "" {
		return "I couldn't fetch the forecast for " + place + " right now. " +
			"Try again in a moment, or check a local weather source."
	}
	return "**Weather in " + place + ":**\n\n" + climate + "\n\n" +
		"Tip: Always check the daily forecast before you pack — conditions can shift quickly."
}

// baliSurfSeasons is the curated seasonality playbook. Kept small and
// high-signal rather than trying to cover every destination.
func bestTimeResponse(in ResponderInput) string {
	dest := in.destination()
	climate := ""
	if in.External != nil {
		climate = in.External.ClimateInfo
	}

	if strings.Contains(strings.ToLower(dest), "bali") {
		out := []string{
			"**Best Time to Surf in " + dest + ":**",
			"",
			"• **West Coast (Kuta/Canggu/Uluwatu):** May–Sep (peak Jun–Aug) — SE trade winds are offshore; consistent SW swells; dry season.",
			"• **East Coast (Nusa Dua/Sanur):** Nov–Mar (peak Dec–Feb) — W/NW winds turn the east coast offshore; wet season but reliable surf windows.",
			"• **Shoulder Months:** Apr & Oct — fewer crowds and friendlier conditions.",
			"",
			"**Skill-Level Notes**",
			"• Beginners: smaller, cleaner days around shoulder months.",
			"• Intermediates/Advanced: peak months for power & consistency (watch tides & reef).",
		}
		if climate != "" {
			out = append(out, "", "**Next 7 Days Snapshot**", strings.TrimSpace(climate))
		}
		out = append(out,
			"",
			"**Quick Pack Tips**",
			"• Reef-safe sunscreen, booties for reef breaks, spare leash & wax.",
			"• Lightweight rain shell (wet season) and sun hoody (dry season).",
			"",
			"If you share **dates** or **coast (west/east)**, I'll tailor spots & daily timing (tide/wind windows).")
		return strings.Join(out, "\n")
	}

	out := []string{
		"**Best Time to Visit " + dest + ":**",
		"• Aim for the **dry season** and **prevailing offshore wind** for your activity.",
		"• Avoid local **peak-holiday weeks** if you want lower prices and fewer crowds.",
	}
	if climate != "" {
		out = append(out, "", "**Next 7 Days Snapshot**", strings.TrimSpace(climate))
	}
	out = append(out, "",
		"Tell me the **activity** and **rough month(s)** and I'll refine this to specific weeks with better odds.")
	return strings.Join(out, "\n")
}

// europeDailyEUR holds per-day spend tiers in EUR. Conservative and
// explainable ranges beat false precision here.
var europeDailyEUR = map[string][2]int{
	"backpacker": {70, 110},
	"midrange":   {150, 250},
	"comfort":    {250, 400},
	"luxury":     {450, 700},
}

var easternHints = []string{
	"poland", "hungary", "romania", "bulgaria", "czech", "slovakia",
	"slovenia", "croatia", "baltic", "estonia", "latvia", "lithuania",
}

var firstNumber = regexp.MustCompile(`\d+`)

func daysFromDuration(duration string) int {
	m := firstNumber.FindString(duration)
	if m == "" {
		return 7
	}
	n := 0
	fmt.Sscanf(m, "%d", &n)
	if n < 1 {
		return 7
	}
	if strings.Contains(strings.ToLower(duration), "week") {
		return n * 7
	}
	return n
}

func budgetResponse(in ResponderInput) string {
	dest := strings.ToLower(in.Entities.Destination)
	if dest == "" {
		dest = strings.ToLower(in.Slots.Destination)
	}
	if dest == "" {
		dest = "europe"
	}
	duration := in.Entities.Duration
	if duration == "" {
		duration = in.Slots.Duration
	}
	if duration == "" {
		duration = "7 days"
	}
	days := daysFromDuration(duration)

	base := map[string][2]int{}
	for k, v := range europeDailyEUR {
		base[k] = v
	}
	isEastern := false
	for _, h := range easternHints {
		if strings.Contains(dest, h) {
			isEastern = true
			break
		}
	}
	switch {
	case isEastern:
		base["backpacker"] = [2]int{60, 100}
		base["midrange"] = [2]int{130, 220}
	case strings.Contains(dest, "switzerland") || strings.Contains(dest, "norway") || strings.Contains(dest, "iceland"):
		base["backpacker"] = [2]int{90, 140}
		base["midrange"] = [2]int{180, 300}
	}

	tier := func(label, key string) string {
		r := base[key]
		return fmt.Sprintf("**%s:** €%d–€%d  _(€%d–€%d/day)_",
			label, r[0]*days, r[1]*days, r[0], r[1])
	}
	title := titleCase(dest)

	out := []string{
		fmt.Sprintf("**How much for %d days in %s? (EUR)**", days, title),
		"",
		tier("Backpacker", "backpacker"),
		tier("Mid-range", "midrange"),
		tier("Comfort", "comfort"),
		tier("Luxury", "luxury"),
		"",
		"**Typical Daily Split (mid-range guide)**",
		"• Lodging: 45–55% (city & season sensitive)",
		"• Food & drink: 20–30%",
		"• Transit (local/intercity): 10–20%",
		"• Sights & tours: 10–20%",
		"",
		"**Levers to Lower Cost**",
		"• Travel in shoulder season; book trains/buses early.",
		"• Choose 2–3 hubs vs. many hops; use day trips.",
		"• Mix in apartments/hostels; cook some meals.",
		"",
		"Tell me **which countries/cities**, **travel style** (hostel/3*/4–5*), and **must-do activities**, " +
			"and I'll pin a tighter range and build a line-item plan.",
	}
	return strings.Join(out, "\n")
}

func regionHint(country *services.Country) string {
	if country == nil {
		return ""
	}
	region := strings.ToLower(country.Region)
	switch {
	case strings.Contains(region, "europe"):
		return "EU emergency number is **112**; major hubs are well-lit with frequent transit."
	case strings.Contains(region, "americas"):
		return "In the US/Canada, emergency number is **911**; rideshare coverage is broad in cities."
	case strings.Contains(region, "asia"):
		return "In much of Asia, metro systems are excellent; learn a few local phrases for quicker help."
	case strings.Contains(region, "africa"):
		return "In large cities, prefer registered taxis/rideshare; confirm fares/routes before boarding."
	case strings.Contains(region, "oceania"):
		return "Urban areas are straightforward; in remote areas carry extra water and sun protection."
	}
	return ""
}

func climateWatchouts(climate string) []string {
	text := strings.ToLower(climate)
	var notes []string
	if strings.Contains(text, "rain") || strings.Contains(text, "drizzle") || strings.Contains(text, "shower") {
		notes = append(notes, "rain expected — sidewalks & scooter lanes can be slick; pack a compact rain shell")
	}
	if strings.Contains(text, "hot") {
		notes = append(notes, "hot conditions — prioritize shade, carry water, and avoid long walks at midday")
	}
	if strings.Contains(text, "cold") {
		notes = append(notes, "cool/cold — pack warm layers; prefer well-lit routes to avoid icy or poorly maintained paths")
	}
	return notes
}

func safetyResponse(in ResponderInput) string {
	dest := in.destination()
	var country *services.Country
	climate := ""
	if in.External != nil {
		country = in.External.Country
		climate = in.External.ClimateInfo
	}

	lines := []string{"**Solo Travel Safety Guide — " + dest + "**"}

	if hint := regionHint(country); hint != "" {
		lines = append(lines, "", "**Local Context**", "• "+hint)
	}
	if climate != "" {
		lines = append(lines, "", "**Next 7-Day Snapshot (weather)**", strings.TrimSpace(climate))
		if watch := climateWatchouts(climate); len(watch) > 0 {
			lines = append(lines, "", "**Weather Watch-outs**")
			for _, w := range watch {
				lines = append(lines, "• "+w)
			}
		}
	}

	lines = append(lines,
		"",
		"**Personal Safety Basics (for everyone)**",
		"• Share your live location with a trusted contact; set a check-in plan.",
		"• Arrive at new accommodations **in daylight** when possible.",
		"• Prefer well-reviewed stays (24/7 desk/security) and rooms on **2nd–5th floors** (safer, still evacuable).",
		"• Use reputable rideshare or registered taxis; confirm plate/driver and sit behind the driver.",
		"• Keep valuables split (primary wallet + backup cash card in a hidden pocket).",
		"• Lock phone with PIN/biometrics; use hotel safe; enable 'Find My' or equivalent.",
		"• Be cautious with public Wi-Fi; consider a travel eSIM and avoid sensitive logins on unknown networks.",
		"• In crowded areas, wear daypacks in front; avoid displaying expensive jewelry/cameras unnecessarily.",
		"",
		"**Neighborhood & Movement**",
		"• Ask your host/hotel which blocks to avoid at night; save safe late-night routes on your map.",
		"• Stick to **well-lit main roads** after dark; if in doubt, rideshare for last-mile connections.",
		"• For hikes/remote areas: log route and time window with a contact; pack water, sun/bug protection, and a basic kit.",
		"",
		"**Women-Focused Notes (optional, use what's useful)**",
		"• If unwanted attention occurs, move into a staffed shop/café and ask for help; trust your instincts.",
		"• Consider women-only dorms/cars (where available); set doorstops and use secondary locks when feasible.",
		"• Carry a small audible alarm/whistle; keep your phone unlocked to emergency dial on the lock screen.",
		"",
		"**Scam & Money Hygiene**",
		"• Common patterns: overfriendly 'helpers', closed-then-open venues redirecting you, unofficial ticket sellers.",
		"• Use ATMs inside banks; cover keypad; decline 'assistance'. Verify taxi meters or agree on fares before entry.",
		"• Keep digital copies of passport/ID and your insurance details in a secure cloud folder.")

	if country != nil && country.Currency != "" {
		lines = append(lines, "• Local currency: **"+country.Currency+"** (carry small bills for tips and transit kiosks).")
	}

	lines = append(lines,
		"",
		"**If You Need Help Fast**",
		"• Head to a staffed hotel, pharmacy, police kiosk, metro office, or large store to ask for assistance.",
		"• Save your accommodation's name/address in local language in your notes for quick sharing.",
		"",
		"If you share **neighborhoods** you'll stay in, **arrival time**, and any **late-night events**, "+
			"I can tailor a safety route plan and late-night transit options.")

	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func itineraryResponse(in ResponderInput) string {
	ti := in.TripIntent
	if ti == nil {
		ti = &models.TripIntent{}
	}

	accType := ti.Accommodation.Type
	if accType == "" {
		accType = "hotel"
	}
	vibe := ti.Accommodation.Vibe
	vibeNote := vibe
	if vibe == "" || vibe == "any" {
		vibeNote = "no vibe preference"
	}
	budgetText := "Not specified"
	switch {
	case ti.Accommodation.BudgetUnlimited:
		budgetText = "Unlimited"
	case ti.Accommodation.MaxPricePerNight != nil:
		budgetText = strings.TrimSpace(fmt.Sprintf("Up to %g %s",
			*ti.Accommodation.MaxPricePerNight, ti.Accommodation.Currency))
	}

	lines := []string{
		"### Your Plan (draft)",
		fmt.Sprintf("- Stay: **%s** (%s)", titleCase(accType), vibeNote),
	}
	if ti.StartDate != nil && ti.EndDate != nil && ti.Nights > 0 {
		lines = append(lines, fmt.Sprintf("- Dates: **%s → %s**  (**%d nights**)",
			ti.StartDate.Format(models.DateOnly), ti.EndDate.Format(models.DateOnly), ti.Nights))
	}
	lines = append(lines, "- Budget: **"+budgetText+"**")

	switch {
	case ti.Destination == "":
		lines = append(lines,
			"- Destination: **Missing** → tell me the city (e.g., *Paris*, *Bangkok*) and I'll fetch weather & hotels.",
			"",
			"**Next:** Tell me your destination city. I'll immediately check the 14-day window forecast and shortlist top hotels.")
	case in.External != nil && in.External.Coords != nil:
		lines = append(lines,
			"- Destination: **"+ti.Destination+"** (ready to fetch hotels & weather)",
			"",
			"**Next:** I'll pull top hotels that match your preferences and show a quick weather overview for your dates.")
	default:
		lines = append(lines,
			"- Destination: **"+ti.Destination+"**",
			"",
			"**Next:** I'll pull top hotels that match your preferences and show a quick weather overview for your dates.")
	}
	return strings.Join(lines, "\n")
}

// thailandNames are destination strings treated as Thailand for visa
// purposes.
var thailandNames = []string{"thailand", "bangkok", "phuket", "chiang mai"}

func isThailand(destination string) bool {
	d := strings.ToLower(destination)
	for _, name := range thailandNames {
		if strings.Contains(d, name) {
			return true
		}
	}
	return false
}

func visaResponse(in ResponderInput) string {
	dest := in.Entities.Destination
	if dest == "" {
		dest = in.Slots.Destination
	}
	citizenship := in.Entities.Citizenship
	if citizenship == "" {
		citizenship = in.Slots.Citizenship
	}

	if !isThailand(dest) {
		return "For visa advice I need 2 basics:\n" +
			"• **Destination country** (e.g., Thailand)\n" +
			"• **Passport country** (e.g., United States)\n" +
			"Optionally, tell me **trip length** and **purpose** (tourism/business) so I can tailor it."
	}
	if citizenship == "" {
		return "Great — focusing on **Thailand**. What **passport** will you travel with? " +
			"If you can, also share **trip length** (days/weeks) and **purpose** (tourism or business)."
	}

	var advice *services.VisaAdvice
	if in.External != nil {
		advice = in.External.VisaTH
	}
	if advice == nil {
		return "Great — focusing on **Thailand**. What **passport** will you travel with?"
	}

	lines := []string{"**Thailand — Visa Guidance for " + advice.PassportCountry + "**"}
	switch advice.Path {
	case services.VisaPathExempt:
		lines = append(lines, "• Likely **visa-exempt** for short tourist visits by air.")
	case services.VisaPathEVOA:
		lines = append(lines, "• Likely **eVOA/VOA** eligible for short tourist visits.")
	case services.VisaPathTouristVisa:
		lines = append(lines, "• You'll likely need a **Tourist Visa (TR)** **before** traveling.")
	case services.VisaPathNonTourist:
		lines = append(lines, "• **Non-tourist purpose** — apply in advance for the correct visa category.")
	case services.VisaPathNeedPassport:
		lines = append(lines, "• I need your **passport country** to check options.")
	}
	if advice.AllowedDays > 0 {
		lines = append(lines, fmt.Sprintf("• Typical permitted stay: **up to %d days** for this path.", advice.AllowedDays))
	}
	if len(advice.Documents) > 0 {
		lines = append(lines, "", "**Documents usually checked at the border**")
		for _, d := range advice.Documents {
			lines = append(lines, "• "+d)
		}
	}
	if len(advice.NextSteps) > 0 {
		lines = append(lines, "", "**Next steps**")
		for _, s := range advice.NextSteps {
			lines = append(lines, "• "+s)
		}
	}
	if len(advice.Notes) > 0 {
		lines = append(lines, "", "**Notes**")
		for _, n := range advice.Notes {
			lines = append(lines, "• "+n)
		}
	}
	if advice.Disclaimer != "" {
		lines = append(lines, "", "_"+advice.Disclaimer+"_")
	}
	return strings.Join(lines, "\n")
}
