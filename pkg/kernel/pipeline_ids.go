package kernel

type PositionID string

func NewPositionID(id string) PositionID { return PositionID(id) }
func (p PositionID) String() string      { return string(p) }
func (p PositionID) IsEmpty() bool       { return string(p) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type OfferID string

func NewOfferID(id string) OfferID { return OfferID(id) }
func (o OfferID) String() string   { return string(o) }
func (o OfferID) IsEmpty() bool    { return string(o) == "" }

type ExperienceID string

func NewExperienceID(id string) ExperienceID { return ExperienceID(id) }
func (e ExperienceID) String() string        { return string(e) }
func (e ExperienceID) IsEmpty() bool         { return string(e) == "" }

type NotificationID string

func NewNotificationID(id string) NotificationID { return NotificationID(id) }
func (n NotificationID) String() string          { return string(n) }
func (n NotificationID) IsEmpty() bool           { return string(n) == "" }
