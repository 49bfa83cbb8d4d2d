package liststate

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ContainerControllerSuite struct {
	suite.Suite

	api     *containerAPIMock
	notes   *recorder
	confirm *answer
	ctrl    *ContainerController
}

func (s *ContainerControllerSuite) SetupTest() {
	s.api = &containerAPIMock{}
	s.notes = &recorder{}
	s.confirm = &answer{ok: true}
	s.ctrl = NewContainerController(s.api, s.notes, s.confirm)
}

func (s *ContainerControllerSuite) load(items ...models.Container) {
	s.api.On("ListContainers", mock.Anything).Return(items, nil).Once()
	s.Require().NoError(s.ctrl.Load(context.Background()))
}

func ids(cs []models.Container) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func (s *ContainerControllerSuite) TestLoad_SplitsPartitions() {
	s.load(
		models.Container{ID: "CNT-1", Status: models.StatusAvailable},
		models.Container{ID: "CNT-2", Status: models.StatusDumped},
		models.Container{ID: "CNT-3", Status: models.StatusInUse},
	)

	snap := s.ctrl.Snapshot()
	s.Require().Equal([]string{"CNT-1", "CNT-3"}, ids(snap.Active))
	s.Require().Equal([]string{"CNT-2"}, ids(snap.Archived))
	s.Require().Equal([]string{"CNT-1", "CNT-3"}, ids(snap.View))
	s.Require().Empty(s.notes.all())
}

func (s *ContainerControllerSuite) TestLoad_FailureKeepsStaleState() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	before := s.ctrl.Snapshot()

	s.api.On("ListContainers", mock.Anything).
		Return([]models.Container(nil), rolloffapi.TransportError("list containers", errors.New("connection refused"))).
		Once()
	err := s.ctrl.Load(context.Background())
	s.Require().Error(err)

	s.Require().Equal(before, s.ctrl.Snapshot())
	notes := s.notes.all()
	s.Require().Len(notes, 1)
	s.Require().Equal("load containers", notes[0].Op)
	s.Require().Contains(notes[0].Message, "Failed to load containers")
}

func (s *ContainerControllerSuite) TestCreate_AppendsCanonical() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})

	canonical := models.Container{ID: "CNT-4", Status: models.StatusInUse, Location: "Main St", UpdatedBy: "dispatch", LastUpdated: time.Now().UTC()}
	s.api.On("CreateContainer", mock.Anything, mock.MatchedBy(func(c models.Container) bool {
		return c.ID == "CNT-4" && c.Status == models.StatusInUse && c.LastUpdated.IsZero()
	})).Return(canonical, nil).Once()

	out, err := s.ctrl.Create(context.Background(), models.ContainerDraft{ID: "cnt-4", Status: models.StatusInUse, Location: "Main St"})
	s.Require().NoError(err)
	s.Require().Equal(canonical, out)

	snap := s.ctrl.Snapshot()
	s.Require().Len(snap.Active, 2)
	s.Require().Equal(canonical, snap.Active[1])
	s.api.AssertExpectations(s.T())
}

func (s *ContainerControllerSuite) TestCreate_DuplicateSurfacesServerMessage() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	before := s.ctrl.Snapshot()

	s.api.On("CreateContainer", mock.Anything, mock.Anything).
		Return(models.Container{}, rolloffapi.HTTPError("create container", http.StatusConflict, "Container CNT-1 already exists")).
		Once()

	_, err := s.ctrl.Create(context.Background(), models.ContainerDraft{ID: "CNT-1", Status: models.StatusAvailable})
	var rerr *rolloffapi.RequestError
	s.Require().True(errors.As(err, &rerr))
	s.Require().Equal(rolloffapi.KindHTTP, rerr.Kind)

	s.Require().Equal(before, s.ctrl.Snapshot())
	notes := s.notes.all()
	s.Require().Len(notes, 1)
	s.Require().Equal("Container CNT-1 already exists", notes[0].Message)
}

func (s *ContainerControllerSuite) TestCreate_GenericMessageWithoutServerText() {
	s.api.On("CreateContainer", mock.Anything, mock.Anything).
		Return(models.Container{}, rolloffapi.HTTPError("create container", http.StatusInternalServerError, "")).
		Once()

	_, err := s.ctrl.Create(context.Background(), models.ContainerDraft{ID: "CNT-1", Status: models.StatusAvailable})
	s.Require().Error(err)
	s.Require().Equal("Failed to add container", s.notes.all()[0].Message)
}

func (s *ContainerControllerSuite) TestCreate_ValidationNeverCallsAPI() {
	_, err := s.ctrl.Create(context.Background(), models.ContainerDraft{ID: " ", Status: models.StatusAvailable})
	var verr *models.ValidationError
	s.Require().True(errors.As(err, &verr))

	_, err = s.ctrl.Create(context.Background(), models.ContainerDraft{ID: "CNT-5", Status: models.StatusDumped})
	s.Require().True(errors.As(err, &verr))

	s.Require().Len(s.notes.all(), 2)
	s.api.AssertNotCalled(s.T(), "CreateContainer", mock.Anything, mock.Anything)
}

func (s *ContainerControllerSuite) TestUpdate_DumpMovesToArchiveEnd() {
	s.load(
		models.Container{ID: "CNT-1", Status: models.StatusAvailable},
		models.Container{ID: "CNT-2", Status: models.StatusDumped},
	)
	w := 2.5
	day := civil.Date{Year: 2024, Month: 1, Day: 1}
	dumped := models.Container{ID: "CNT-1", Status: models.StatusDumped, Weight: &w, DateDumped: &day}
	s.api.On("UpdateContainer", mock.Anything, "CNT-1", mock.Anything).Return(dumped, nil).Once()

	_, err := s.ctrl.Update(context.Background(), models.ContainerDraft{
		ID: "CNT-1", Status: models.StatusDumped, Disposal: &models.Disposal{Weight: 2.5, DateDumped: day},
	})
	s.Require().NoError(err)

	snap := s.ctrl.Snapshot()
	s.Require().Empty(snap.Active)
	s.Require().Equal([]string{"CNT-2", "CNT-1"}, ids(snap.Archived))
}

func (s *ContainerControllerSuite) TestUpdate_ReplacesInPlace() {
	s.load(
		models.Container{ID: "CNT-1", Status: models.StatusAvailable},
		models.Container{ID: "CNT-2", Status: models.StatusAvailable},
		models.Container{ID: "CNT-3", Status: models.StatusAvailable},
	)
	s.api.On("UpdateContainer", mock.Anything, "CNT-2", mock.Anything).
		Return(models.Container{ID: "CNT-2", Status: models.StatusNeedsPickedUp}, nil).
		Once()

	_, err := s.ctrl.Update(context.Background(), models.ContainerDraft{ID: "CNT-2", Status: models.StatusNeedsPickedUp})
	s.Require().NoError(err)

	snap := s.ctrl.Snapshot()
	s.Require().Equal([]string{"CNT-1", "CNT-2", "CNT-3"}, ids(snap.Active))
	s.Require().Equal(models.StatusNeedsPickedUp, snap.Active[1].Status)
}

func (s *ContainerControllerSuite) TestUpdate_FailureLeavesStateUntouched() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	before := s.ctrl.Snapshot()

	s.api.On("UpdateContainer", mock.Anything, "CNT-1", mock.Anything).
		Return(models.Container{}, rolloffapi.HTTPError("update container", http.StatusInternalServerError, "")).
		Once()

	_, err := s.ctrl.Update(context.Background(), models.ContainerDraft{ID: "CNT-1", Status: models.StatusInUse})
	s.Require().Error(err)
	s.Require().Equal(before, s.ctrl.Snapshot())
	s.Require().Len(s.notes.all(), 1)
	s.Require().Equal("Failed to update container", s.notes.all()[0].Message)
}

func (s *ContainerControllerSuite) TestArchived_NotEditableNorDeletable() {
	s.load(models.Container{ID: "CNT-2", Status: models.StatusDumped})
	s.Require().False(s.ctrl.CanEdit("CNT-2"))

	_, err := s.ctrl.Update(context.Background(), models.ContainerDraft{ID: "CNT-2", Status: models.StatusAvailable})
	s.Require().ErrorIs(err, ErrArchived)

	ok, err := s.ctrl.Delete(context.Background(), "CNT-2")
	s.Require().False(ok)
	s.Require().ErrorIs(err, ErrArchived)

	s.Require().Empty(s.confirm.prompts)
	s.Require().Len(s.notes.all(), 2)
	s.api.AssertNotCalled(s.T(), "UpdateContainer", mock.Anything, mock.Anything, mock.Anything)
	s.api.AssertNotCalled(s.T(), "DeleteContainer", mock.Anything, mock.Anything)
}

func (s *ContainerControllerSuite) TestDelete_DeclinedIssuesNoRequest() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	s.confirm.ok = false

	ok, err := s.ctrl.Delete(context.Background(), "CNT-1")
	s.Require().NoError(err)
	s.Require().False(ok)
	s.Require().Len(s.confirm.prompts, 1)
	s.Require().Contains(s.confirm.prompts[0], "CNT-1")
	s.Require().Empty(s.notes.all())
	s.Require().Len(s.ctrl.Snapshot().Active, 1)
	s.api.AssertNotCalled(s.T(), "DeleteContainer", mock.Anything, mock.Anything)
}

func (s *ContainerControllerSuite) TestDelete_RemovesByID() {
	s.load(
		models.Container{ID: "CNT-1", Status: models.StatusAvailable},
		models.Container{ID: "CNT-2", Status: models.StatusInUse},
	)
	s.api.On("DeleteContainer", mock.Anything, "CNT-1").Return(models.Container{ID: "CNT-1"}, nil).Once()

	ok, err := s.ctrl.Delete(context.Background(), "cnt-1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal([]string{"CNT-2"}, ids(s.ctrl.Snapshot().Active))
}

func (s *ContainerControllerSuite) TestDelete_FailureLeavesStateUntouched() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	before := s.ctrl.Snapshot()
	s.api.On("DeleteContainer", mock.Anything, "CNT-1").
		Return(models.Container{}, rolloffapi.TransportError("delete container", errors.New("timeout"))).
		Once()

	ok, err := s.ctrl.Delete(context.Background(), "CNT-1")
	s.Require().Error(err)
	s.Require().False(ok)
	s.Require().Equal(before, s.ctrl.Snapshot())
	s.Require().Len(s.notes.all(), 1)
}

func (s *ContainerControllerSuite) TestFilterAndTab() {
	s.load(
		models.Container{ID: "CNT-1", Status: models.StatusAvailable, Location: "Oak Street"},
		models.Container{ID: "CNT-2", Status: models.StatusInUse, Contents: "Concrete"},
		models.Container{ID: "CNT-3", Status: models.StatusDumped, Location: "oak ave"},
	)

	s.ctrl.SetQuery("OAK")
	s.Require().Equal([]string{"CNT-1"}, ids(s.ctrl.View()))

	s.Require().NoError(s.ctrl.SetTab(TabArchived))
	s.Require().Equal([]string{"CNT-3"}, ids(s.ctrl.View()))

	s.Require().NoError(s.ctrl.SetTab(TabActive))
	s.ctrl.SetQuery("")
	s.Require().NoError(s.ctrl.SetStatusFilter(models.StatusInUse))
	s.Require().Equal([]string{"CNT-2"}, ids(s.ctrl.View()))

	s.Require().Error(s.ctrl.SetStatusFilter("Lost"))
	s.Require().Error(s.ctrl.SetTab("trash"))
}

func (s *ContainerControllerSuite) TestSubscribe_SeesEveryChange() {
	var got []ContainerSnapshot
	unsub := s.ctrl.Subscribe(func(snap ContainerSnapshot) { got = append(got, snap) })

	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})
	s.ctrl.SetQuery("zzz")
	s.Require().Len(got, 2)
	s.Require().Empty(got[1].View)

	unsub()
	s.ctrl.SetQuery("")
	s.Require().Len(got, 2)
}

func (s *ContainerControllerSuite) TestClose_DropsLateResponse() {
	s.load(models.Container{ID: "CNT-1", Status: models.StatusAvailable})

	// ответ приходит уже после закрытия контроллера
	s.api.On("ListContainers", mock.Anything).
		Run(func(mock.Arguments) { s.ctrl.Close() }).
		Return([]models.Container{}, nil).
		Once()

	err := s.ctrl.Load(context.Background())
	s.Require().ErrorIs(err, ErrClosed)
	s.Require().Len(s.ctrl.Snapshot().Active, 1)
	s.Require().Empty(s.notes.all())
}

func (s *ContainerControllerSuite) TestClose_LateFailureRaisesNothing() {
	s.api.On("ListContainers", mock.Anything).
		Run(func(mock.Arguments) { s.ctrl.Close() }).
		Return([]models.Container(nil), errors.New("boom")).
		Once()

	s.Require().ErrorIs(s.ctrl.Load(context.Background()), ErrClosed)
	s.Require().Empty(s.notes.all())
}

func TestContainerControllerSuite(t *testing.T) {
	suite.Run(t, new(ContainerControllerSuite))
}
