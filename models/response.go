package models

// Response is the generic API envelope.
type Response struct {
	Success      int         `json:"success"`
	ErrorCode    string      `json:"error_code,omitempty"`
	ErrorDetails string      `json:"error_details,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

type GroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GroupResponse struct {
	Group Group `json:"group"`
}

type MembersResponse struct {
	Members []Member `json:"members"`
}

type MemberResponse struct {
	Member Member `json:"member"`
}

type CyclesResponse struct {
	Cycles []Cycle `json:"cycles"`
}

type CycleResponse struct {
	Cycle Cycle `json:"cycle"`
}

type ContributionsResponse struct {
	Contributions []Contribution `json:"contributions"`
}

type ContributionResponse struct {
	Contribution Contribution `json:"contribution"`
}
