package dhe

import (
	"math/big"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/nicolas3355/discrete-log-toy/group"
	"github.com/sirupsen/logrus"
)

// State 当事者の状態 Uninitialized -> HasKeyPair -> HasSharedSecret
type State int

const (
	Uninitialized State = iota
	HasKeyPair
	HasSharedSecret
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case HasKeyPair:
		return "HasKeyPair"
	case HasSharedSecret:
		return "HasSharedSecret"
	}
	return "Unknown"
}

// Party 鍵交換の当事者 一度作った鍵は変更しない
type Party struct {
	id     uuid.UUID
	name   string
	params *Params
	rng    *rand.Rand
	state  State
	secret *big.Int
	public group.Element
	shared group.Element
	logger *logrus.Entry
}

// NewParty コンストラクタ rng は秘密鍵の生成に使う
func NewParty(name string, params *Params, rng *rand.Rand) *Party {
	id := uuid.New()
	return &Party{
		id:     id,
		name:   name,
		params: params,
		rng:    rng,
		state:  Uninitialized,
		logger: logrus.WithFields(logrus.Fields{
			"component": "dhe",
			"party":     name,
			"party_id":  id.String(),
		}),
	}
}

// ID 当事者ごとに振られる uuid
func (p *Party) ID() uuid.UUID {
	return p.id
}

// Name ログ用の名前
func (p *Party) Name() string {
	return p.name
}

// State 現在の状態
func (p *Party) State() State {
	return p.state
}

// GenerateKeyPair 秘密鍵と公開鍵を生成し公開鍵を返す
func (p *Party) GenerateKeyPair() (group.Element, error) {
	if err := p.expect(Uninitialized); err != nil {
		return group.Element{}, err
	}

	secret, public, err := GenerateKeyPair(p.params, p.rng)
	if err != nil {
		return group.Element{}, err
	}
	p.setKeyPair(secret, public)
	return public, nil
}

// UseSecret 秘密鍵を外から指定する(乱数を使わない)
func (p *Party) UseSecret(secret *big.Int) (group.Element, error) {
	if err := p.expect(Uninitialized); err != nil {
		return group.Element{}, err
	}

	public, err := p.params.G.Pow(secret)
	if err != nil {
		return group.Element{}, errors.Errorf("compute public key: %w", err)
	}
	p.setKeyPair(new(big.Int).Set(secret), public)
	return public, nil
}

// ReceivePublicKey 相手の公開鍵から共有鍵を導出する 導出は一度だけ
func (p *Party) ReceivePublicKey(counterpart group.Element) (group.Element, error) {
	if err := p.expect(HasKeyPair); err != nil {
		return group.Element{}, err
	}
	if counterpart.IsZero() || counterpart.Modulus().Cmp(p.params.P) != 0 {
		return group.Element{}, errors.Wrapf(group.ErrDomainMismatch, "public key %s is not in group mod %s", counterpart, p.params.P)
	}

	shared, err := DeriveSharedSecret(p.secret, counterpart)
	if err != nil {
		return group.Element{}, err
	}
	p.shared = shared
	p.state = HasSharedSecret

	p.logger.WithFields(logrus.Fields{
		"counterpart_public": counterpart.String(),
		"shared_secret":      shared.String(),
	}).Debug("shared secret derived")
	return shared, nil
}

// PublicKey 公開鍵 鍵生成前は ErrInvalidState
func (p *Party) PublicKey() (group.Element, error) {
	if p.state == Uninitialized {
		return group.Element{}, errors.Wrapf(ErrInvalidState, "%s has no key pair", p.name)
	}
	return p.public, nil
}

// Secret 秘密鍵のコピー 鍵生成前は ErrInvalidState
func (p *Party) Secret() (*big.Int, error) {
	if p.state == Uninitialized {
		return nil, errors.Wrapf(ErrInvalidState, "%s has no key pair", p.name)
	}
	return new(big.Int).Set(p.secret), nil
}

// SharedSecret 共有鍵 導出前は ErrInvalidState
func (p *Party) SharedSecret() (group.Element, error) {
	if err := p.expect(HasSharedSecret); err != nil {
		return group.Element{}, err
	}
	return p.shared, nil
}

func (p *Party) setKeyPair(secret *big.Int, public group.Element) {
	p.secret = secret
	p.public = public
	p.state = HasKeyPair

	p.logger.WithFields(logrus.Fields{
		"secret": secret.String(),
		"public": public.String(),
	}).Debug("key pair generated")
}

func (p *Party) expect(s State) error {
	if p.state != s {
		return errors.Wrapf(ErrInvalidState, "%s is %s, want %s", p.name, p.state, s)
	}
	return nil
}
