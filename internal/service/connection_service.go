package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrSelfConnection indicates a user tried to connect with themselves.
	ErrSelfConnection = errors.New("cannot connect with yourself")
	// ErrConnectionExists indicates an edge between the two users already exists.
	ErrConnectionExists = errors.New("connection already exists")
	// ErrConnectionNotFound indicates the connection does not exist.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrNotRequestTarget indicates the caller is not the recipient of the request.
	ErrNotRequestTarget = errors.New("only the request target may accept")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ConnectionService manages the request/accept/remove lifecycle of the
// social graph.
type ConnectionService interface {
	Request(ctx context.Context, requesterID, targetID uint) (dto.ConnectionResponse, error)
	Accept(ctx context.Context, userID, connectionID uint) (dto.ConnectionResponse, error)
	List(ctx context.Context, userID uint) (dto.ConnectionListResponse, error)
	ListRequests(ctx context.Context, userID uint) (dto.ConnectionListResponse, error)
	Remove(ctx context.Context, userID, connectionID uint) error
}

type connectionService struct {
	connections repository.ConnectionRepository
	users       repository.UserRepository
	logger      zerolog.Logger
}

// NewConnectionService constructs the connection service.
func NewConnectionService(connections repository.ConnectionRepository, users repository.UserRepository, logger zerolog.Logger) ConnectionService {
	return &connectionService{
		connections: connections,
		users:       users,
		logger:      logger.With().Str("component", "connection_service").Logger(),
	}
}

func (s *connectionService) Request(ctx context.Context, requesterID, targetID uint) (dto.ConnectionResponse, error) {
	if requesterID == targetID {
		return dto.ConnectionResponse{}, ErrSelfConnection
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConnectionResponse{}, ErrUserNotFound
		}
		return dto.ConnectionResponse{}, err
	}

	if _, err := s.connections.FindPair(ctx, requesterID, targetID); err == nil {
		return dto.ConnectionResponse{}, ErrConnectionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ConnectionResponse{}, err
	}

	connection := models.Connection{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connections.Create(ctx, &connection); err != nil {
		return dto.ConnectionResponse{}, err
	}

	return dto.NewConnectionResponse(connection), nil
}

func (s *connectionService) Accept(ctx context.Context, userID, connectionID uint) (dto.ConnectionResponse, error) {
	connection, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ConnectionResponse{}, ErrConnectionNotFound
		}
		return dto.ConnectionResponse{}, err
	}

	if connection.TargetID != userID {
		return dto.ConnectionResponse{}, ErrNotRequestTarget
	}

	// Accepting twice is a no-op.
	if connection.Status == models.ConnectionStatusAccepted {
		return dto.NewConnectionResponse(connection), nil
	}

	if err := s.connections.UpdateStatus(ctx, connection.ID, models.ConnectionStatusAccepted); err != nil {
		return dto.ConnectionResponse{}, err
	}

	connection.Status = models.ConnectionStatusAccepted
	return dto.NewConnectionResponse(connection), nil
}

func (s *connectionService) List(ctx context.Context, userID uint) (dto.ConnectionListResponse, error) {
	connections, err := s.connections.ListForUser(ctx, userID, models.ConnectionStatusAccepted)
	if err != nil {
		return dto.ConnectionListResponse{}, err
	}

	return s.buildPeerList(ctx, userID, connections)
}

func (s *connectionService) ListRequests(ctx context.Context, userID uint) (dto.ConnectionListResponse, error) {
	connections, err := s.connections.ListIncomingPending(ctx, userID)
	if err != nil {
		return dto.ConnectionListResponse{}, err
	}

	return s.buildPeerList(ctx, userID, connections)
}

// Remove deletes the edge if present. Removing an already-absent connection
// succeeds as well, so repeated removals behave identically.
func (s *connectionService) Remove(ctx context.Context, userID, connectionID uint) error {
	rows, err := s.connections.DeleteForUser(ctx, connectionID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Debug().Uint("connection_id", connectionID).Msg("remove skipped, connection absent")
	}
	return nil
}

func (s *connectionService) buildPeerList(ctx context.Context, userID uint, connections []models.Connection) (dto.ConnectionListResponse, error) {
	peerIDs := make([]uint, 0, len(connections))
	for _, connection := range connections {
		peerIDs = append(peerIDs, peerOf(connection, userID))
	}

	peers, err := s.users.FindByIDs(ctx, peerIDs)
	if err != nil {
		return dto.ConnectionListResponse{}, err
	}

	byID := make(map[uint]models.User, len(peers))
	for _, peer := range peers {
		byID[peer.ID] = peer
	}

	items := make([]dto.ConnectionPeerResponse, 0, len(connections))
	for _, connection := range connections {
		peer, ok := byID[peerOf(connection, userID)]
		if !ok {
			// The peer account disappeared; hide the dangling edge.
			continue
		}
		items = append(items, dto.ConnectionPeerResponse{
			ConnectionID: connection.ID,
			Status:       connection.Status,
			Peer:         dto.NewUserSummary(peer),
			ConnectedAt:  connection.UpdatedAt,
		})
	}

	return dto.ConnectionListResponse{Items: items}, nil
}

func peerOf(connection models.Connection, userID uint) uint {
	if connection.RequesterID == userID {
		return connection.TargetID
	}
	return connection.RequesterID
}
