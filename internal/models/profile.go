package models

// ProfileSize is the fixed number of bullet points in a CodingProfile.
const ProfileSize = 20

// FillerObservation pads profiles when the model returns too few bullets.
const FillerObservation = "Shows consistent coding practices across projects"

// CodingProfile is always exactly ProfileSize non-empty observations.
type CodingProfile []string
