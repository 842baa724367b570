package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type AgencyID string

func NewAgencyID(id string) AgencyID { return AgencyID(id) }
func (a AgencyID) String() string    { return string(a) }
func (a AgencyID) IsEmpty() bool     { return string(a) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }
