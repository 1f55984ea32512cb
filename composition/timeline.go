// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

import (
	"github.com/bytedance/sonic"

	"github.com/brightlinemedia/spacegraph/topology"
)

// TimelineSchema is the schema for Timeline.
var TimelineSchema = Schema{Name: "Timeline", Version: 1}

// Timeline is the root of a composition: an implicit Stack of tracks plus an
// optional global start time and presentation-space discrete sample
// generators for picture and audio.
type Timeline struct {
	SerializableObjectWithMetadataBase
	globalStartTime *topology.Ordinate
	tracks          *Stack
	pictureRate     *topology.SampleIndexGenerator
	audioRate       *topology.SampleIndexGenerator
}

// NewTimeline builds a Timeline with an empty implicit tracks Stack.
func NewTimeline(name string, globalStartTime *topology.Ordinate, metadata AnyDictionary) *Timeline {
	return &Timeline{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(name, metadata),
		globalStartTime:                    globalStartTime,
		tracks:                             NewStack("tracks", nil, nil, nil, nil),
	}
}

// GlobalStartTime returns the timeline's global start time, or nil.
func (t *Timeline) GlobalStartTime() *topology.Ordinate { return t.globalStartTime }

// SetGlobalStartTime sets the timeline's global start time.
func (t *Timeline) SetGlobalStartTime(gst *topology.Ordinate) { t.globalStartTime = gst }

// Tracks returns the implicit Stack of tracks.
func (t *Timeline) Tracks() *Stack { return t.tracks }

// SetTracks replaces the implicit Stack of tracks.
func (t *Timeline) SetTracks(tracks *Stack) { t.tracks = tracks }

// PictureRate returns the timeline's presentation-space picture sample
// index generator, or nil.
func (t *Timeline) PictureRate() *topology.SampleIndexGenerator { return t.pictureRate }

// SetPictureRate sets the timeline's picture sample index generator.
func (t *Timeline) SetPictureRate(g *topology.SampleIndexGenerator) { t.pictureRate = g }

// AudioRate returns the timeline's presentation-space audio sample index
// generator, or nil.
func (t *Timeline) AudioRate() *topology.SampleIndexGenerator { return t.audioRate }

// SetAudioRate sets the timeline's audio sample index generator.
func (t *Timeline) SetAudioRate(g *topology.SampleIndexGenerator) { t.audioRate = g }

// VideoTracks returns all child tracks of kind Video.
func (t *Timeline) VideoTracks() []*Track { return t.tracksByKind(TrackKindVideo) }

// AudioTracks returns all child tracks of kind Audio.
func (t *Timeline) AudioTracks() []*Track { return t.tracksByKind(TrackKindAudio) }

func (t *Timeline) tracksByKind(kind string) []*Track {
	var result []*Track
	if t.tracks == nil {
		return result
	}
	for _, child := range t.tracks.Children() {
		if track, ok := child.(*Track); ok && track.Kind() == kind {
			result = append(result, track)
		}
	}
	return result
}

// Duration returns the duration of the implicit tracks Stack.
func (t *Timeline) Duration() topology.Ordinate {
	if t.tracks == nil {
		return 0
	}
	return t.tracks.Duration()
}

// InternalSpaces implements SpaceObject: presentation, then intrinsic, per
// original spec §4.6 ("Stack, Timeline: behave as identity ... edges").
func (t *Timeline) InternalSpaces() []SpaceLabel { return []SpaceLabel{SpacePresentation, SpaceIntrinsic} }

// NumChildren implements SpaceObject: the Timeline owns exactly its one
// implicit tracks Stack.
func (t *Timeline) NumChildren() int { return 1 }

// ChildEntity implements SpaceObject.
func (t *Timeline) ChildEntity(i int) Composable {
	if i != 0 || t.tracks == nil {
		return nil
	}
	return t.tracks
}

// ChildSpan implements SpaceObject: the tracks Stack occupies the
// Timeline's full intrinsic span.
func (t *Timeline) ChildSpan(i int) (topology.ContinuousInterval, error) {
	if i != 0 {
		return topology.ContinuousInterval{}, &IndexError{Index: i, Size: 1}
	}
	return topology.NewContinuousInterval(0, t.Duration()), nil
}

// BuildTransform implements SpaceObject: identity on every edge, same as
// Stack.
func (t *Timeline) BuildTransform(from, to SpaceLabel, childIndex int) (topology.Topology, error) {
	switch {
	case from == SpacePresentation && to == SpaceIntrinsic:
		return topology.InfiniteIdentity(), nil
	case from == SpaceIntrinsic && to == SpaceChild:
		return topology.InfiniteIdentity(), nil
	case from == to:
		return topology.InfiniteIdentity(), nil
	default:
		return topology.Topology{}, &SchemaError{Schema: TimelineSchema.String(), Message: "no transform from " + string(from) + " to " + string(to)}
	}
}

// BoundsOf implements SpaceObject.
func (t *Timeline) BoundsOf(label SpaceLabel, childIndex int) (topology.ContinuousInterval, error) {
	switch label {
	case SpacePresentation, SpaceIntrinsic:
		return topology.NewContinuousInterval(0, t.Duration()), nil
	case SpaceChild:
		return t.ChildSpan(childIndex)
	default:
		return topology.ContinuousInterval{}, &SchemaError{Schema: TimelineSchema.String(), Message: "no such space: " + string(label)}
	}
}

// DiscreteInfo implements SpaceObject: the presentation space carries the
// picture-rate generator, when set, as the timeline's primary discrete
// bridge; audio rate is available separately via AudioRate.
func (t *Timeline) DiscreteInfo(label SpaceLabel, childIndex int) *topology.SampleIndexGenerator {
	if label != SpacePresentation {
		return nil
	}
	return t.pictureRate
}

// SchemaName implements SerializableObject.
func (t *Timeline) SchemaName() string { return TimelineSchema.Name }

// SchemaVersion implements SerializableObject.
func (t *Timeline) SchemaVersion() int { return TimelineSchema.Version }

// Clone implements SerializableObject.
func (t *Timeline) Clone() SerializableObject {
	var gst *topology.Ordinate
	if t.globalStartTime != nil {
		cp := *t.globalStartTime
		gst = &cp
	}
	var tracks *Stack
	if t.tracks != nil {
		tracks = t.tracks.Clone().(*Stack)
	}
	return &Timeline{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(t.Name(), CloneAnyDictionary(t.Metadata())),
		globalStartTime:                    gst,
		tracks:                             tracks,
		pictureRate:                        t.pictureRate,
		audioRate:                          t.audioRate,
	}
}

type timelineJSON struct {
	Schema          string                         `json:"OTIO_SCHEMA"`
	Name            string                         `json:"name"`
	Metadata        AnyDictionary                  `json:"metadata"`
	GlobalStartTime *topology.Ordinate             `json:"global_start_time"`
	Tracks          RawMessage                     `json:"tracks"`
	PictureRate     *topology.SampleIndexGenerator `json:"picture_rate"`
	AudioRate       *topology.SampleIndexGenerator `json:"audio_rate"`
}

// MarshalJSON implements json.Marshaler.
func (t *Timeline) MarshalJSON() ([]byte, error) {
	tracks, err := encodeRaw(t.tracks)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&timelineJSON{
		Schema:          TimelineSchema.String(),
		Name:            t.Name(),
		Metadata:        t.Metadata(),
		GlobalStartTime: t.globalStartTime,
		Tracks:          tracks,
		PictureRate:     t.pictureRate,
		AudioRate:       t.audioRate,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timeline) UnmarshalJSON(data []byte) error {
	var j timelineJSON
	if err := sonic.Unmarshal(data, &j); err != nil {
		return err
	}
	var tracks *Stack
	if obj, err := decodeRaw(j.Tracks); err != nil {
		return err
	} else if obj != nil {
		st, ok := obj.(*Stack)
		if !ok {
			return &SchemaError{Schema: obj.SchemaName(), Message: "expected a Stack"}
		}
		tracks = st
	} else {
		tracks = NewStack("tracks", nil, nil, nil, nil)
	}
	*t = Timeline{
		SerializableObjectWithMetadataBase: NewSerializableObjectWithMetadataBase(j.Name, j.Metadata),
		globalStartTime:                    j.GlobalStartTime,
		tracks:                             tracks,
		pictureRate:                        j.PictureRate,
		audioRate:                          j.AudioRate,
	}
	return nil
}

func init() {
	RegisterSchema(TimelineSchema, func() SerializableObject { return NewTimeline("", nil, nil) })
}
