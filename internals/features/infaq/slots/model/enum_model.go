package model

type ContributionKind string
type SlotStatus string

const (
	ContributionKindUnitDonation        ContributionKind = "UNIT_DONATION"
	ContributionKindDeliverySponsorship ContributionKind = "DELIVERY_SPONSORSHIP"
)

func (k ContributionKind) Valid() bool {
	switch k {
	case ContributionKindUnitDonation, ContributionKindDeliverySponsorship:
		return true
	}
	return false
}

// Label status tampil apa adanya di kalender publik.
const (
	SlotStatusDeliverySecured   SlotStatus = "Delivery Secured - Join In!"
	SlotStatusContributionsOpen SlotStatus = "Contributions Open (Shared Delivery Pending)"
	SlotStatusDeliverySponsored SlotStatus = "Delivery Fee Sponsored!"

	// Hanya dari seed / input manual admin, tidak pernah dihasilkan reconciler.
	SlotStatusContributionsWelcome SlotStatus = "Contributions Welcome - Delivery Needed"
	SlotStatusRecentlyFulfilled    SlotStatus = "Recently Fulfilled!"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusDeliverySecured,
		SlotStatusContributionsOpen,
		SlotStatusDeliverySponsored,
		SlotStatusContributionsWelcome,
		SlotStatusRecentlyFulfilled:
		return true
	}
	return false
}

const (
	// Mosque belum dipilih (sponsor ongkir saja), diisi admin belakangan.
	MosquePlaceholder = "To Be Assigned"

	AnonymousDonorLabel   = "Anonymous Donor"
	AnonymousSponsorLabel = "Anonymous Sponsor"
)
